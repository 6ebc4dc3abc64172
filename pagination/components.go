package pagination

import "github.com/bwmarrin/discordgo"

// ComponentKind selects which button row a session renders.
type ComponentKind uint8

const (
	// KindDefault shows jump-start, back, custom page, step, jump-end.
	KindDefault ComponentKind = iota
	// KindProfile shows the compact/medium/full size buttons.
	KindProfile
	// KindMapSearch is KindDefault without jump-end and the page modal.
	KindMapSearch
)

// Component custom ids; these strings are the wire contract with Discord.
const (
	CustomIDStart  = "pagination_start"
	CustomIDBack   = "pagination_back"
	CustomIDCustom = "pagination_custom"
	CustomIDStep   = "pagination_step"
	CustomIDEnd    = "pagination_end"

	CustomIDProfileCompact = "profile_compact"
	CustomIDProfileMedium  = "profile_medium"
	CustomIDProfileFull    = "profile_full"

	// ModalPageID identifies both the page-jump modal and its text field.
	ModalPageID = "pagination_page"
)

// Rows builds the component rows for the current position. A single-page
// set renders no components at all.
func Rows(kind ComponentKind, p Pages) []discordgo.MessageComponent {
	switch kind {
	case KindProfile:
		return profileRows(p)
	case KindMapSearch:
		return mapSearchRows(p)
	default:
		return defaultRows(p)
	}
}

func defaultRows(p Pages) []discordgo.MessageComponent {
	if p.LastIndex == 0 {
		return []discordgo.MessageComponent{}
	}

	row := discordgo.ActionsRow{Components: []discordgo.MessageComponent{
		discordgo.Button{
			CustomID: CustomIDStart,
			Disabled: p.Index == 0,
			Emoji:    &discordgo.ComponentEmoji{Name: "⏮️"},
			Style:    discordgo.SecondaryButton,
		},
		discordgo.Button{
			CustomID: CustomIDBack,
			Disabled: p.Index == 0,
			Emoji:    &discordgo.ComponentEmoji{Name: "⏪"},
			Style:    discordgo.SecondaryButton,
		},
		discordgo.Button{
			CustomID: CustomIDCustom,
			Disabled: false,
			Emoji:    &discordgo.ComponentEmoji{Name: "*️⃣"},
			Style:    discordgo.SecondaryButton,
		},
		discordgo.Button{
			CustomID: CustomIDStep,
			Disabled: p.Index == p.LastIndex,
			Emoji:    &discordgo.ComponentEmoji{Name: "⏩"},
			Style:    discordgo.SecondaryButton,
		},
		discordgo.Button{
			CustomID: CustomIDEnd,
			Disabled: p.Index == p.LastIndex,
			Emoji:    &discordgo.ComponentEmoji{Name: "⏭️"},
			Style:    discordgo.SecondaryButton,
		},
	}}

	return []discordgo.MessageComponent{row}
}

func profileRows(p Pages) []discordgo.MessageComponent {
	row := discordgo.ActionsRow{Components: []discordgo.MessageComponent{
		discordgo.Button{
			CustomID: CustomIDProfileCompact,
			Disabled: p.Index == 0,
			Label:    "Compact",
			Style:    discordgo.SuccessButton,
		},
		discordgo.Button{
			CustomID: CustomIDProfileMedium,
			Disabled: p.Index == 1,
			Label:    "Medium",
			Style:    discordgo.SuccessButton,
		},
		discordgo.Button{
			CustomID: CustomIDProfileFull,
			Disabled: p.Index == 2,
			Label:    "Full",
			Style:    discordgo.SuccessButton,
		},
	}}

	return []discordgo.MessageComponent{row}
}

func mapSearchRows(p Pages) []discordgo.MessageComponent {
	if p.LastIndex == 0 {
		return []discordgo.MessageComponent{}
	}

	row := discordgo.ActionsRow{Components: []discordgo.MessageComponent{
		discordgo.Button{
			CustomID: CustomIDStart,
			Disabled: p.Index == 0,
			Emoji:    &discordgo.ComponentEmoji{Name: "⏮️"},
			Style:    discordgo.SecondaryButton,
		},
		discordgo.Button{
			CustomID: CustomIDBack,
			Disabled: p.Index == 0,
			Emoji:    &discordgo.ComponentEmoji{Name: "⏪"},
			Style:    discordgo.SecondaryButton,
		},
		discordgo.Button{
			CustomID: CustomIDStep,
			Disabled: p.Index == p.LastIndex,
			Emoji:    &discordgo.ComponentEmoji{Name: "⏩"},
			Style:    discordgo.SecondaryButton,
		},
	}}

	return []discordgo.MessageComponent{row}
}

// applyAction advances p for a button custom id. The bool reports whether
// the id was recognized.
func applyAction(customID string, p Pages) (Pages, bool) {
	switch customID {
	case CustomIDStart:
		return p.jumpStart(), true
	case CustomIDBack:
		return p.stepBack(), true
	case CustomIDStep:
		return p.step(), true
	case CustomIDEnd:
		return p.jumpEnd(), true
	case CustomIDProfileCompact:
		return p.JumpTo(1), true
	case CustomIDProfileMedium:
		return p.JumpTo(2), true
	case CustomIDProfileFull:
		return p.JumpTo(3), true
	default:
		return p, false
	}
}
