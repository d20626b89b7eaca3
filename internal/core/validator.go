package core

import "sf-metadata-coverage/internal/types"

// CoverageValidator checks metadata components against a coverage report.
// It has no side effects; the report is never mutated.
type CoverageValidator struct{}

func NewCoverageValidator() CoverageValidator {
	return CoverageValidator{}
}

// Validate evaluates components in order and records one unsupported entry
// per failing component, or per failing member of the Settings type.
func (v CoverageValidator) Validate(components []types.MetadataComponent, report types.CoverageReport, required []types.Channel) types.ValidationResult {
	result := types.ValidationResult{
		Success:     true,
		Message:     types.MessageAllSupported,
		Unsupported: []types.UnsupportedType{},
	}
	for _, component := range components {
		if IsSettingsType(component.TypeName) {
			for _, member := range component.Members {
				key := SettingsTypeName(member)
				if entry, failed := checkType(report, key, []string{key}, required); failed {
					result.Unsupported = append(result.Unsupported, entry)
				}
			}
			continue
		}
		key := NormalizeTypeName(component.TypeName)
		if entry, failed := checkType(report, key, component.Members, required); failed {
			result.Unsupported = append(result.Unsupported, entry)
		}
	}
	if len(result.Unsupported) > 0 {
		result.Success = false
		result.Message = types.MessageSomeUnsupport
	}
	return result
}

func checkType(report types.CoverageReport, key string, members []string, required []types.Channel) (types.UnsupportedType, bool) {
	coverage, ok := report.Types[key]
	if !ok {
		return types.UnsupportedType{
			Type:     key,
			Members:  copyMembers(members),
			Channels: map[types.Channel]bool{},
		}, true
	}
	if IsFullySupported(coverage.Channels, required) {
		return types.UnsupportedType{}, false
	}
	return types.UnsupportedType{
		Type:     key,
		Members:  copyMembers(members),
		Channels: FilterChannels(coverage.Channels, required),
	}, true
}

// IsFullySupported reports whether every required channel is true.  An
// empty requirement is always satisfied.
func IsFullySupported(channels types.Channels, required []types.Channel) bool {
	for _, channel := range required {
		if value, _ := channels.Get(channel); !value {
			return false
		}
	}
	return true
}

// FilterChannels keeps the required channels known to the report entry,
// mapped to their values.
func FilterChannels(channels types.Channels, required []types.Channel) map[types.Channel]bool {
	filtered := make(map[types.Channel]bool, len(required))
	for _, channel := range required {
		if value, ok := channels.Get(channel); ok {
			filtered[channel] = value
		}
	}
	return filtered
}

func copyMembers(members []string) []string {
	out := make([]string, len(members))
	copy(out, members)
	return out
}
