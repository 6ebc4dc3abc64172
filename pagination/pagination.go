package pagination

import (
	"fmt"
	"log/slog"
	"strconv"
	"sync"
	"time"

	"github.com/bwmarrin/discordgo"

	"github.com/MaxOhn/shishabot/telemetry"
)

// sessionTimeout is how long a session survives without interaction.
const sessionTimeout = time.Minute

// PageBuilder renders the embed for the current position. Builders are
// snapshots: they carry everything needed to re-render, so a stored
// session is self-contained.
type PageBuilder interface {
	BuildPage(p Pages) (*discordgo.MessageEmbed, error)
}

// SendFunc publishes the initial message and returns it. The caller picks
// the transport: channel message for prefix commands, interaction callback
// or follow-up update for slash commands.
type SendFunc func(embed *discordgo.MessageEmbed, components []discordgo.MessageComponent) (*discordgo.Message, error)

// Config describes a pagination to start.
type Config struct {
	// Author is the only user whose button presses are accepted.
	Author  string
	Pages   Pages
	Kind    ComponentKind
	Builder PageBuilder
	// DeferComponents acknowledges component presses with a deferred
	// update before editing, for builders slower than the callback window.
	DeferComponents bool
}

// Session is the per-message pagination state. Its fields are only
// accessed while holding mu, so component events are processed serially.
type Session struct {
	mu sync.Mutex

	author    string
	channelID string
	messageID string

	pages           Pages
	kind            ComponentKind
	builder         PageBuilder
	deferComponents bool

	// reset extends the timeout; done stops the timeout task. reset is
	// never closed so resetTimeout stays safe after close.
	reset     chan struct{}
	done      chan struct{}
	closeOnce sync.Once
}

func (s *Session) resetTimeout() {
	select {
	case s.reset <- struct{}{}:
	default:
	}
}

func (s *Session) close() {
	s.closeOnce.Do(func() { close(s.done) })
}

// Manager owns all active sessions, keyed by message id.
type Manager struct {
	mu       sync.Mutex
	sessions map[string]*Session

	timeout time.Duration
}

func NewManager() *Manager {
	return &Manager{
		sessions: make(map[string]*Session),
		timeout:  sessionTimeout,
	}
}

// Start renders the first page, publishes it through send, and registers a
// session when there is more than one page.
func (m *Manager) Start(s *discordgo.Session, cfg Config, send SendFunc) error {
	embed, err := cfg.Builder.BuildPage(cfg.Pages)
	if err != nil {
		return fmt.Errorf("failed to build first page: %w", err)
	}

	msg, err := send(embed, Rows(cfg.Kind, cfg.Pages))
	if err != nil {
		return fmt.Errorf("failed to send paginated message: %w", err)
	}

	if cfg.Pages.LastIndex == 0 {
		return nil
	}

	sess := &Session{
		author:          cfg.Author,
		channelID:       msg.ChannelID,
		messageID:       msg.ID,
		pages:           cfg.Pages,
		kind:            cfg.Kind,
		builder:         cfg.Builder,
		deferComponents: cfg.DeferComponents,
		reset:           make(chan struct{}, 1),
		done:            make(chan struct{}),
	}

	m.mu.Lock()
	m.sessions[msg.ID] = sess
	telemetry.SetPaginationSessions(len(m.sessions))
	m.mu.Unlock()

	go m.timeoutLoop(s, sess)

	return nil
}

func (m *Manager) get(messageID string) *Session {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.sessions[messageID]
}

// remove deletes the session and reports whether it was still present.
func (m *Manager) remove(messageID string) bool {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.sessions[messageID]; !ok {
		return false
	}
	delete(m.sessions, messageID)
	telemetry.SetPaginationSessions(len(m.sessions))

	return true
}

// Close removes the session for a message and stops its timeout task.
func (m *Manager) Close(messageID string) {
	m.mu.Lock()
	sess := m.sessions[messageID]
	if sess != nil {
		delete(m.sessions, messageID)
		telemetry.SetPaginationSessions(len(m.sessions))
	}
	m.mu.Unlock()

	if sess != nil {
		sess.close()
	}
}

// timeoutLoop strips the component row after the timeout elapses without a
// reset. If the session was already removed by a concurrent handler, the
// message is left alone.
func (m *Manager) timeoutLoop(s *discordgo.Session, sess *Session) {
	for {
		select {
		case <-sess.done:
			return
		case <-sess.reset:
		case <-time.After(m.timeout):
			if !m.remove(sess.messageID) {
				return
			}

			empty := []discordgo.MessageComponent{}
			_, err := s.ChannelMessageEditComplex(&discordgo.MessageEdit{
				ID:         sess.messageID,
				Channel:    sess.channelID,
				Components: &empty,
			})
			if err != nil {
				slog.Warn("failed to remove components",
					slog.String("message_id", sess.messageID),
					slog.Any("err", err),
				)
			}

			return
		}
	}
}

// pressResult is the outcome of applying an interaction to a session;
// the Discord side effect is left to the caller.
type pressResult int

const (
	pressDenied pressResult = iota
	pressModal
	pressUnknown
	pressInvalid
	pressUpdated
)

// press applies a button press: author check first, then the timeout
// reset and the page mutation.
func (s *Session) press(userID, customID string) pressResult {
	s.mu.Lock()
	defer s.mu.Unlock()

	if userID != s.author {
		return pressDenied
	}

	s.resetTimeout()

	if customID == CustomIDCustom {
		return pressModal
	}

	pages, ok := applyAction(customID, s.pages)
	if !ok {
		return pressUnknown
	}
	s.pages = pages

	return pressUpdated
}

// jump applies a page-jump modal value, clamped to the valid range.
func (s *Session) jump(userID, value string) pressResult {
	s.mu.Lock()
	defer s.mu.Unlock()

	if userID != s.author {
		return pressDenied
	}

	s.resetTimeout()

	page, err := strconv.Atoi(value)
	if err != nil {
		return pressInvalid
	}
	s.pages = s.pages.JumpTo(page)

	return pressUpdated
}

func (s *Session) snapshotPages() Pages {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.pages
}

// HandleComponent processes a button press on a paginated message.
func (m *Manager) HandleComponent(s *discordgo.Session, i *discordgo.InteractionCreate) {
	customID := i.MessageComponentData().CustomID

	sess := m.get(i.Message.ID)
	if sess == nil {
		// Session timed out or never existed; ack so the button press
		// doesn't show as failed.
		slog.Debug("component press without session", slog.String("custom_id", customID))
		ackUpdate(s, i)
		return
	}

	switch sess.press(interactionUserID(i), customID) {
	case pressDenied:
		respondEphemeral(s, i, "Only the user who invoked the command can use these buttons")
	case pressModal:
		openPageModal(s, i, sess.snapshotPages())
	case pressUnknown:
		slog.Error(fmt.Sprintf("unknown component `%s`", customID))
		ackUpdate(s, i)
	case pressUpdated:
		m.rerender(s, i, sess)
	}
}

// HandleModal processes the page-jump modal submission.
func (m *Manager) HandleModal(s *discordgo.Session, i *discordgo.InteractionCreate) {
	data := i.ModalSubmitData()
	if data.CustomID != ModalPageID {
		slog.Error(fmt.Sprintf("unknown modal `%s`", data.CustomID))
		return
	}

	if i.Message == nil {
		return
	}

	sess := m.get(i.Message.ID)
	if sess == nil {
		ackUpdate(s, i)
		return
	}

	value := modalValue(data, ModalPageID)

	switch sess.jump(interactionUserID(i), value) {
	case pressDenied:
		respondEphemeral(s, i, "Only the user who invoked the command can use these buttons")
	case pressInvalid:
		respondEphemeral(s, i, fmt.Sprintf("`%s` is not a valid page number", value))
	case pressUpdated:
		m.rerender(s, i, sess)
	}
}

// rerender builds the current page and edits the message, either through
// the interaction callback or, when components are deferred, through a
// follow-up edit. Build and edit failures drop the session.
func (m *Manager) rerender(s *discordgo.Session, i *discordgo.InteractionCreate, sess *Session) {
	pages := sess.snapshotPages()

	embed, err := sess.builder.BuildPage(pages)
	if err != nil {
		slog.Error("failed to build page", slog.Any("err", err))
		m.Close(sess.messageID)
		ackUpdate(s, i)
		return
	}

	embeds := []*discordgo.MessageEmbed{embed}
	components := Rows(sess.kind, pages)

	if sess.deferComponents {
		ackUpdate(s, i)
		_, err = s.InteractionResponseEdit(i.Interaction, &discordgo.WebhookEdit{
			Embeds:     &embeds,
			Components: &components,
		})
	} else {
		err = s.InteractionRespond(i.Interaction, &discordgo.InteractionResponse{
			Type: discordgo.InteractionResponseUpdateMessage,
			Data: &discordgo.InteractionResponseData{
				Embeds:     embeds,
				Components: components,
			},
		})
	}

	if err != nil {
		slog.Error("failed to update paginated message",
			slog.String("message_id", sess.messageID),
			slog.Any("err", err),
		)
		m.Close(sess.messageID)
	}
}

func openPageModal(s *discordgo.Session, i *discordgo.InteractionCreate, p Pages) {
	err := s.InteractionRespond(i.Interaction, &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseModal,
		Data: &discordgo.InteractionResponseData{
			CustomID: ModalPageID,
			Title:    "Jump to a page",
			Components: []discordgo.MessageComponent{
				discordgo.ActionsRow{Components: []discordgo.MessageComponent{
					discordgo.TextInput{
						CustomID:    ModalPageID,
						Label:       fmt.Sprintf("Page number (1-%d)", p.LastPage()),
						Style:       discordgo.TextInputShort,
						Required:    true,
						MaxLength:   8,
						Placeholder: strconv.Itoa(p.CurrentPage()),
					},
				}},
			},
		},
	})
	if err != nil {
		slog.Error("failed to open page modal", slog.Any("err", err))
	}
}

func ackUpdate(s *discordgo.Session, i *discordgo.InteractionCreate) {
	err := s.InteractionRespond(i.Interaction, &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseDeferredMessageUpdate,
	})
	if err != nil {
		slog.Warn("failed to ack component", slog.Any("err", err))
	}
}

func respondEphemeral(s *discordgo.Session, i *discordgo.InteractionCreate, content string) {
	err := s.InteractionRespond(i.Interaction, &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseChannelMessageWithSource,
		Data: &discordgo.InteractionResponseData{
			Content: content,
			Flags:   discordgo.MessageFlagsEphemeral,
		},
	})
	if err != nil {
		slog.Warn("failed to send ephemeral notice", slog.Any("err", err))
	}
}

func interactionUserID(i *discordgo.InteractionCreate) string {
	if i.Member != nil && i.Member.User != nil {
		return i.Member.User.ID
	}
	if i.User != nil {
		return i.User.ID
	}
	return ""
}

func modalValue(data discordgo.ModalSubmitInteractionData, fieldID string) string {
	for _, comp := range data.Components {
		row, ok := comp.(*discordgo.ActionsRow)
		if !ok || row == nil {
			continue
		}
		for _, inner := range row.Components {
			if input, ok := inner.(*discordgo.TextInput); ok && input.CustomID == fieldID {
				return input.Value
			}
		}
	}
	return ""
}
