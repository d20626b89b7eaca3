package types

// TypeMapping maps a source file suffix to the metadata type it declares.
//
// Suffixes are matched against file names ending in "-meta.xml", e.g. the
// suffix "cls" matches "Foo.cls-meta.xml".  The member name is the file name
// with the suffix stripped, unless the type is a container whose members
// live inside the file.
type TypeMapping struct {
	// Type is the metadata type name as it appears in a package.xml manifest.
	Type string `yaml:"type"`

	// Directory optionally restricts the mapping to files below a directory
	// with this name (e.g. "lwc").
	Directory string `yaml:"directory,omitempty"`

	// MemberFromDirectory names the member after the file's parent
	// directory.  Used for bundles such as lwc/myCmp/myCmp.js-meta.xml.
	MemberFromDirectory bool `yaml:"member_from_directory,omitempty"`

	// QualifyWithObject prefixes the member with the owning object, taken
	// from the grandparent directory (objects/Account/fields/X.field-meta.xml
	// yields Account.X).
	QualifyWithObject bool `yaml:"qualify_with_object,omitempty"`

	// MemberXPath, when set, marks the file as a container and selects the
	// member names inside it (e.g. CustomLabels -> labels/fullName).
	MemberXPath string `yaml:"member_xpath,omitempty"`

	// MemberType overrides the component type used for members extracted
	// through MemberXPath (e.g. CustomLabels files yield CustomLabel members).
	MemberType string `yaml:"member_type,omitempty"`

	// QualifyMembers prefixes extracted members with the file's base name,
	// e.g. "Account.Duplicate_Rule" for matching rules.
	QualifyMembers bool `yaml:"qualify_members,omitempty"`
}

// TypeRegistryFile is the top-level structure of a type registry YAML file.
//
// Multiple registry files can be layered: the embedded default first, then
// any user supplied files.  Later layers override earlier ones per suffix.
type TypeRegistryFile struct {
	// RegistryVersion identifies the file format version.
	RegistryVersion string `yaml:"registry_version"`

	// Suffixes maps a metadata file suffix to its type mapping.
	Suffixes map[string]TypeMapping `yaml:"suffixes"`
}

// ResultSummary is the compact YAML summary written next to a result file.
type ResultSummary struct {
	Success          bool     `yaml:"success"`
	Message          string   `yaml:"message"`
	APIVersion       string   `yaml:"api_version"`
	Channels         []string `yaml:"channels"`
	ComponentCount   int      `yaml:"components"`
	UnsupportedCount int      `yaml:"unsupported"`
	MissingTypes     []string `yaml:"missing_types,omitempty"`
}
