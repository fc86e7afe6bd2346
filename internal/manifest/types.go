package manifest

// DefaultAPILevel is the host API level stamped into manifests that do not
// declare one.
const DefaultAPILevel = 9

// DefaultApplicableVersion is the host version a manifest targets when it
// does not say otherwise.
const DefaultApplicableVersion = "any"

// LoadRequiredState describes how far the host must have started before the
// plugin may load.
type LoadRequiredState int

// Known load states.
const (
	RequiresFullReadiness    LoadRequiredState = 0
	RequiresPartialReadiness LoadRequiredState = 1
	NoReadinessRequirement   LoadRequiredState = 2
)

// Manifest is the plugin descriptor. Optional scalars are pointers so that
// an absent value can be told apart from a zero value; absent fields are
// omitted when the manifest is written.
type Manifest struct {
	Author          string `yaml:"author,omitempty" json:"Author,omitempty"`
	Name            string `yaml:"name,omitempty" json:"Name,omitempty"`
	InternalName    string `yaml:"internal_name,omitempty" json:"InternalName,omitempty"`
	AssemblyVersion string `yaml:"assembly_version,omitempty" json:"AssemblyVersion,omitempty"`
	Description     string `yaml:"description,omitempty" json:"Description,omitempty"`
	Punchline       string `yaml:"punchline,omitempty" json:"Punchline,omitempty"`
	Changelog       string `yaml:"changelog,omitempty" json:"Changelog,omitempty"`

	ApplicableVersion      string             `yaml:"applicable_version,omitempty" json:"ApplicableVersion,omitempty"`
	MinimumRequiredVersion string             `yaml:"minimum_required_version,omitempty" json:"MinimumRequiredVersion,omitempty"`
	APILevel               *int               `yaml:"api_level,omitempty" json:"ApiLevel,omitempty"`
	LoadRequiredState      *LoadRequiredState `yaml:"load_required_state,omitempty" json:"LoadRequiredState,omitempty"`
	LoadSync               *bool              `yaml:"load_sync,omitempty" json:"LoadSync,omitempty"`
	CanUnloadAsync         *bool              `yaml:"can_unload_async,omitempty" json:"CanUnloadAsync,omitempty"`
	LoadPriority           *int               `yaml:"load_priority,omitempty" json:"LoadPriority,omitempty"`

	RepoURL      string   `yaml:"repo_url,omitempty" json:"RepoUrl,omitempty"`
	Tags         []string `yaml:"tags,omitempty" json:"Tags,omitzero"`
	CategoryTags []string `yaml:"category_tags,omitempty" json:"CategoryTags,omitzero"`
	ImageURLs    []string `yaml:"image_urls,omitempty" json:"ImageUrls,omitzero"`
	IconURL      string   `yaml:"icon_url,omitempty" json:"IconUrl,omitempty"`

	AcceptsFeedback *bool  `yaml:"accepts_feedback,omitempty" json:"AcceptsFeedback,omitempty"`
	FeedbackMessage string `yaml:"feedback_message,omitempty" json:"FeedbackMessage,omitempty"`
}

// New returns a manifest with every static default applied.
func New() *Manifest {
	m := &Manifest{}
	ApplyDefaults(m)
	return m
}

// ApplyDefaults fills in api_level, applicable_version and accepts_feedback
// when they are absent. Values already present are left untouched.
func ApplyDefaults(m *Manifest) {
	if m.APILevel == nil {
		m.APILevel = ptr(DefaultAPILevel)
	}
	if m.ApplicableVersion == "" {
		m.ApplicableVersion = DefaultApplicableVersion
	}
	if m.AcceptsFeedback == nil {
		m.AcceptsFeedback = ptr(true)
	}
}

func ptr[T any](v T) *T {
	return &v
}
