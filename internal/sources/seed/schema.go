package seed

// File is the top-level structure of the seed YAML file. It carries the
// entity collections and the mock user table.
type File struct {
	Scholarships []ScholarshipProps `yaml:"scholarships"`
	Universities []UniversityProps  `yaml:"universities"`
	Users        []UserProps        `yaml:"users"`
}

// ScholarshipProps contains the raw scholarship properties.
type ScholarshipProps struct {
	ID           string  `yaml:"id"`
	Name         string  `yaml:"name"`
	Description  string  `yaml:"description,omitempty"`
	Country      string  `yaml:"country,omitempty"`
	Budget       float64 `yaml:"budget,omitempty"`
	Major        string  `yaml:"major,omitempty"`
	Deadline     string  `yaml:"deadline,omitempty"` // calendar date, ex: 2025-01-15
	URL          string  `yaml:"url,omitempty"`
	Organization string  `yaml:"organization,omitempty"`
}

// UniversityProps contains the raw university properties.
type UniversityProps struct {
	ID       string   `yaml:"id"`
	Name     string   `yaml:"name"`
	Country  string   `yaml:"country,omitempty"`
	Programs []string `yaml:"programs,omitempty"`
	URL      string   `yaml:"url,omitempty"`
	LogoURL  string   `yaml:"logo_url,omitempty"`
}

// UserProps contains a seed account. Either a plain password (hashed at
// load time) or a precomputed bcrypt hash may be given.
type UserProps struct {
	ID           string `yaml:"id"`
	Email        string `yaml:"email"`
	Password     string `yaml:"password,omitempty"`
	PasswordHash string `yaml:"password_hash,omitempty"`
	Role         string `yaml:"role,omitempty"` // defaults to student
}
