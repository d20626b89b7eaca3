package policies

import (
	"fmt"
	"strings"

	"github.com/ZanzyTHEbar/errbuilder-go"

	"sf-metadata-coverage/internal/types"
)

const msgNoChannels = "no coverage channels selected"

// ChannelPolicy decides which channels a check requires.  Channel flags
// win; without any flag the configured defaults apply.
type ChannelPolicy struct {
	Defaults []string
}

func NewChannelPolicy(defaults []string) ChannelPolicy {
	return ChannelPolicy{Defaults: defaults}
}

// Resolve returns the required channels in display order without
// duplicates.  selected is keyed by flag name.
func (p ChannelPolicy) Resolve(selected map[string]bool) ([]types.Channel, error) {
	var channels []types.Channel
	for _, entry := range types.ChannelFlags {
		if selected[entry.Flag] {
			channels = append(channels, entry.Channel)
		}
	}
	if len(channels) > 0 {
		return channels, nil
	}
	wanted := map[types.Channel]struct{}{}
	for _, raw := range p.Defaults {
		value := strings.TrimSpace(raw)
		if value == "" {
			continue
		}
		channel, ok := types.ParseChannel(value)
		if !ok {
			return nil, errbuilder.New().
				WithCode(errbuilder.CodeInvalidArgument).
				WithMsg(fmt.Sprintf("unknown channel %q", value))
		}
		wanted[channel] = struct{}{}
	}
	for _, channel := range types.AllChannels() {
		if _, ok := wanted[channel]; ok {
			channels = append(channels, channel)
		}
	}
	return channels, nil
}

// RequireChannels fails when no channel was selected, listing the flags
// that select one.
func RequireChannels(channels []types.Channel) error {
	if len(channels) > 0 {
		return nil
	}
	flags := make([]string, 0, len(types.ChannelFlags))
	for _, entry := range types.ChannelFlags {
		flags = append(flags, "--"+entry.Flag)
	}
	return errbuilder.New().
		WithCode(errbuilder.CodeInvalidArgument).
		WithMsg(fmt.Sprintf("%s; refine using any of the following flags:\n%s", msgNoChannels, strings.Join(flags, "\n")))
}
