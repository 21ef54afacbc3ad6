package config

// Workfile represents the structure of the rsym.work.yaml configuration file.
type Workfile struct {
	Version    string   `yaml:"version"`
	Root       string   `yaml:"root"`
	Namespaces []string `yaml:"namespaces"`
}

// Namespacefile represents the structure of the rsym.yaml configuration file.
type Namespacefile struct {
	Version      string              `yaml:"version"`
	Package      string              `yaml:"package"`
	Kind         string              `yaml:"kind"`
	PackageID    *int                `yaml:"packageId"`
	Dependencies []string            `yaml:"dependencies"`
	Resources    map[string][]string `yaml:"resources"`
	Symbols      string              `yaml:"symbols"`
	Res          string              `yaml:"res"`
}
