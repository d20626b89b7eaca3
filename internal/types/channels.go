package types

// Channel names one packaging, deployment or API mechanism whose support is
// tracked per metadata type in the coverage report.
type Channel string

const (
	ChannelClassicManagedPackaging           Channel = "classicManagedPackaging"
	ChannelClassicUnmanagedPackaging         Channel = "classicUnmanagedPackaging"
	ChannelManagedPackaging                  Channel = "managedPackaging"
	ChannelUnlockedPackagingWithoutNamespace Channel = "unlockedPackagingWithoutNamespace"
	ChannelUnlockedPackagingWithNamespace    Channel = "unlockedPackagingWithNamespace"
	ChannelSourceTracking                    Channel = "sourceTracking"
	ChannelToolingAPI                        Channel = "toolingApi"
	ChannelMetadataAPI                       Channel = "metadataApi"
	ChannelApexMetadataAPI                   Channel = "apexMetadataApi"
	ChannelChangeSets                        Channel = "changeSets"
)

// ChannelFlag binds a channel to the CLI flag that selects it.
type ChannelFlag struct {
	Flag    string
	Channel Channel
}

// ChannelFlags lists every channel in display order together with its flag.
var ChannelFlags = []ChannelFlag{
	{Flag: "1gp-managed", Channel: ChannelClassicManagedPackaging},
	{Flag: "1gp-unmanaged", Channel: ChannelClassicUnmanagedPackaging},
	{Flag: "2gp-managed", Channel: ChannelManagedPackaging},
	{Flag: "2gp-unlocked", Channel: ChannelUnlockedPackagingWithoutNamespace},
	{Flag: "2gp-unlocked-with-namespace", Channel: ChannelUnlockedPackagingWithNamespace},
	{Flag: "source-tracking", Channel: ChannelSourceTracking},
	{Flag: "tooling-api", Channel: ChannelToolingAPI},
	{Flag: "metadata-api", Channel: ChannelMetadataAPI},
	{Flag: "apex-metadata-api", Channel: ChannelApexMetadataAPI},
	{Flag: "changesets", Channel: ChannelChangeSets},
}

// AllChannels returns the closed channel set in display order.
func AllChannels() []Channel {
	channels := make([]Channel, 0, len(ChannelFlags))
	for _, entry := range ChannelFlags {
		channels = append(channels, entry.Channel)
	}
	return channels
}

// ParseChannel accepts either a channel name or its flag name.
func ParseChannel(value string) (Channel, bool) {
	for _, entry := range ChannelFlags {
		if string(entry.Channel) == value || entry.Flag == value {
			return entry.Channel, true
		}
	}
	return "", false
}

// Channels is the fixed-shape support record of a single report entry.
type Channels struct {
	ClassicManagedPackaging           bool `json:"classicManagedPackaging"`
	ClassicUnmanagedPackaging         bool `json:"classicUnmanagedPackaging"`
	ManagedPackaging                  bool `json:"managedPackaging"`
	UnlockedPackagingWithoutNamespace bool `json:"unlockedPackagingWithoutNamespace"`
	UnlockedPackagingWithNamespace    bool `json:"unlockedPackagingWithNamespace"`
	SourceTracking                    bool `json:"sourceTracking"`
	ToolingAPI                        bool `json:"toolingApi"`
	MetadataAPI                       bool `json:"metadataApi"`
	ApexMetadataAPI                   bool `json:"apexMetadataApi"`
	ChangeSets                        bool `json:"changeSets"`
}

// Get reports the flag for channel. The second value is false for a
// channel outside the closed set.
func (c Channels) Get(channel Channel) (bool, bool) {
	switch channel {
	case ChannelClassicManagedPackaging:
		return c.ClassicManagedPackaging, true
	case ChannelClassicUnmanagedPackaging:
		return c.ClassicUnmanagedPackaging, true
	case ChannelManagedPackaging:
		return c.ManagedPackaging, true
	case ChannelUnlockedPackagingWithoutNamespace:
		return c.UnlockedPackagingWithoutNamespace, true
	case ChannelUnlockedPackagingWithNamespace:
		return c.UnlockedPackagingWithNamespace, true
	case ChannelSourceTracking:
		return c.SourceTracking, true
	case ChannelToolingAPI:
		return c.ToolingAPI, true
	case ChannelMetadataAPI:
		return c.MetadataAPI, true
	case ChannelApexMetadataAPI:
		return c.ApexMetadataAPI, true
	case ChannelChangeSets:
		return c.ChangeSets, true
	default:
		return false, false
	}
}
