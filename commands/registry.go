// Package commands implements the bot's command set and assembles the
// registry handed to the dispatcher.
package commands

import (
	"sync"

	"github.com/MaxOhn/shishabot/bot"
)

var (
	once     sync.Once
	registry *bot.Registry
)

// Registry builds the process-wide command registry on first use.
func Registry() *bot.Registry {
	once.Do(func() {
		registry = bot.NewRegistry(
			[]*bot.SlashCommand{
				commandsSlash,
				helpSlash,
				inviteSlash,
				pingSlash,
				queueSlash,
				renderSlash,
				serverConfigSlash,
				skinSlash,
				skinListSlash,
			},
			[]*bot.PrefixCommand{
				commandsPrefix,
				helpPrefix,
				invitePrefix,
				pingPrefix,
				prefixPrefix,
				queuePrefix,
				renderPrefix,
				skinListPrefix,
			},
		)
	})

	return registry
}
