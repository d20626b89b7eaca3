package core

// settingsType is the aggregate pseudo-type whose members are reported as
// independent "<Member>Settings" entries.
const settingsType = "Settings"

var reportTypeAliases = map[string]string{
	"CustomLabel":  "CustomLabels",
	"MatchingRule": "MatchingRules",
}

// NormalizeTypeName maps a declared metadata type name to the key the
// coverage report uses for it.  Unknown names pass through unchanged.
func NormalizeTypeName(typeName string) string {
	if alias, ok := reportTypeAliases[typeName]; ok {
		return alias
	}
	return typeName
}

func IsSettingsType(typeName string) bool {
	return typeName == settingsType
}

// SettingsTypeName returns the report key for one Settings member,
// e.g. "Account" -> "AccountSettings".
func SettingsTypeName(member string) string {
	return member + settingsType
}
