package config

// StorageBackend selects where theme choices are persisted.
type StorageBackend string

const (
	StorageCookie StorageBackend = "cookie"
	StorageSQLite StorageBackend = "sqlite"
)

// Config is the top-level inkwell configuration, corresponding to inkwell.yml.
type Config struct {
	Site     SiteConfig     `yaml:"site" koanf:"site"`
	Content  ContentConfig  `yaml:"content" koanf:"content"`
	Server   ServerConfig   `yaml:"server" koanf:"server"`
	Theme    ThemeConfig    `yaml:"theme" koanf:"theme"`
	Comments CommentsConfig `yaml:"comments" koanf:"comments"`
	Search   SearchConfig   `yaml:"search" koanf:"search"`
	Markdown MarkdownConfig `yaml:"markdown" koanf:"markdown"`
	DataDir  string         `yaml:"data_dir" koanf:"data_dir"`
}

// SiteConfig holds presentation settings.
type SiteConfig struct {
	Title       string `yaml:"title" koanf:"title"`
	Description string `yaml:"description" koanf:"description"`
}

// ContentConfig says where the manifest and markdown pages live. BaseURL,
// when set, takes precedence over Dir.
type ContentConfig struct {
	Dir      string   `yaml:"dir" koanf:"dir"`
	BaseURL  string   `yaml:"base_url" koanf:"base_url"`
	Manifest string   `yaml:"manifest" koanf:"manifest"`
	PagesDir string   `yaml:"pages_dir" koanf:"pages_dir"`
	Include  []string `yaml:"include" koanf:"include"`
	Watch    bool     `yaml:"watch" koanf:"watch"`
}

type ServerConfig struct {
	Port            int  `yaml:"port" koanf:"port"`
	AllowAllOrigins bool `yaml:"allow_all_origins" koanf:"allow_all_origins"`
}

type ThemeConfig struct {
	Default string         `yaml:"default" koanf:"default"`
	Storage StorageBackend `yaml:"storage" koanf:"storage"`
}

// CommentsConfig configures the giscus widget.
type CommentsConfig struct {
	Enabled    bool   `yaml:"enabled" koanf:"enabled"`
	Repo       string `yaml:"repo" koanf:"repo"`
	RepoID     string `yaml:"repo_id" koanf:"repo_id"`
	Category   string `yaml:"category" koanf:"category"`
	CategoryID string `yaml:"category_id" koanf:"category_id"`
	Mapping    string `yaml:"mapping" koanf:"mapping"`
	Lang       string `yaml:"lang" koanf:"lang"`
}

type SearchConfig struct {
	DebounceMS int `yaml:"debounce_ms" koanf:"debounce_ms"`
}

type MarkdownConfig struct {
	HighlightStyle string `yaml:"highlight_style" koanf:"highlight_style"`
}
