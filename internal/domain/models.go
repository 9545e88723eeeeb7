package domain

// Domain contains core models and the user use case.

// User is one entry of the GitHub users listing.
type User struct {
	ID        int    `json:"id" yaml:"id"`
	Login     string `json:"login" yaml:"login"`
	AvatarURL string `json:"avatar_url" yaml:"avatar_url"`
	HTMLURL   string `json:"html_url" yaml:"html_url"`
}

// UserDetail is the full profile of a single GitHub user.
type UserDetail struct {
	ID          int    `json:"id" yaml:"id"`
	Login       string `json:"login" yaml:"login"`
	AvatarURL   string `json:"avatar_url" yaml:"avatar_url"`
	HTMLURL     string `json:"html_url" yaml:"html_url"`
	Name        string `json:"name" yaml:"name"`
	Company     string `json:"company" yaml:"company"`
	Blog        string `json:"blog" yaml:"blog"`
	Location    string `json:"location" yaml:"location"`
	Email       string `json:"email" yaml:"email"`
	Bio         string `json:"bio" yaml:"bio"`
	PublicRepos int    `json:"public_repos" yaml:"public_repos"`
	PublicGists int    `json:"public_gists" yaml:"public_gists"`
	Followers   int    `json:"followers" yaml:"followers"`
	Following   int    `json:"following" yaml:"following"`

	// Profile is filled by the optional page enrichment step.
	Profile *ProfileMeta `json:"profile,omitempty" yaml:"profile,omitempty"`
}

// ProfileMeta is metadata scraped from the user's public profile page.
type ProfileMeta struct {
	Title       string `json:"title,omitempty" yaml:"title,omitempty"`
	Description string `json:"description,omitempty" yaml:"description,omitempty"`
	ImageURL    string `json:"image_url,omitempty" yaml:"image_url,omitempty"`
}
