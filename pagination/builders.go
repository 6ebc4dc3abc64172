package pagination

import (
	"fmt"
	"strings"
	"time"

	"github.com/bwmarrin/discordgo"
)

// CommandCount is a single entry of the command usage tally.
type CommandCount struct {
	Name  string
	Count uint64
}

// CommandCountsPerPage is how many entries a command tally page shows.
const CommandCountsPerPage = 15

// CommandCounts renders the most used commands since boot.
type CommandCounts struct {
	BootTime time.Time
	Counts   []CommandCount
}

func (b *CommandCounts) BuildPage(p Pages) (*discordgo.MessageEmbed, error) {
	end := p.Index + p.PerPage
	if end > len(b.Counts) {
		end = len(b.Counts)
	}

	var sb strings.Builder
	for i, entry := range b.Counts[p.Index:end] {
		fmt.Fprintf(&sb, "%d. `%s`: %d\n", p.Index+i+1, entry.Name, entry.Count)
	}
	if sb.Len() == 0 {
		sb.WriteString("No commands have been used yet")
	}

	return &discordgo.MessageEmbed{
		Title:       "Most popular commands:",
		Description: sb.String(),
		Footer: &discordgo.MessageEmbedFooter{
			Text: fmt.Sprintf("Page %d/%d • Started counting %s",
				p.CurrentPage(), p.LastPage(), b.BootTime.UTC().Format("2006-01-02 15:04:05 UTC")),
		},
	}, nil
}

// SkinListPerPage is how many skins a skin list page shows.
const SkinListPerPage = 12

// SkinList renders the available render skins.
type SkinList struct {
	Skins []string
}

func (b *SkinList) BuildPage(p Pages) (*discordgo.MessageEmbed, error) {
	end := p.Index + p.PerPage
	if end > len(b.Skins) {
		end = len(b.Skins)
	}

	var sb strings.Builder
	for i, skin := range b.Skins[p.Index:end] {
		fmt.Fprintf(&sb, "`%d.` %s\n", p.Index+i+1, skin)
	}
	if sb.Len() == 0 {
		sb.WriteString("No skins available")
	}

	return &discordgo.MessageEmbed{
		Title:       "All available skins:",
		Description: sb.String(),
		Footer: &discordgo.MessageEmbedFooter{
			Text: fmt.Sprintf("Page %d/%d", p.CurrentPage(), p.LastPage()),
		},
	}, nil
}

// EmbedBuilderFunc adapts a function to the PageBuilder interface.
type EmbedBuilderFunc func(p Pages) (*discordgo.MessageEmbed, error)

func (f EmbedBuilderFunc) BuildPage(p Pages) (*discordgo.MessageEmbed, error) {
	return f(p)
}
