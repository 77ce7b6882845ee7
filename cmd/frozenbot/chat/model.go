// Package chat implements the interactive FrozenBOT console using
// bubbletea. The chat model owns presentation only; every user line is
// handed to the dialogue session, which returns the lines to show. One
// Enter keypress maps to exactly one session turn, preserving the
// one-line-in, lines-out contract of the core.
package chat

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/glamour"

	"github.com/RGJohana/Bot-Frozen/cmd/frozenbot/ui"
	"github.com/RGJohana/Bot-Frozen/internal/dialogue"
)

// farewell closes every session, matching the sign-off the shop has always
// used.
const farewell = "Gracias por hacer uso de nuestros Servicios. Nos vemos pronto. Saludos, FROZENBOT."

// helpMarkdown is rendered with glamour for the /help command.
const helpMarkdown = `# FrozenBOT

Escribí tu consulta y presioná **Enter**. FrozenBOT entiende saludos,
consultas de horarios, sabores, precios y, por supuesto, pedidos.

## Comandos

- ` + "`/help`" + ` — esta ayuda
- ` + "`/stock`" + ` — productos disponibles
- ` + "`/salir`" + ` — terminar la sesión

Durante un pedido, respondé lo que el bot te pida: sabor, cantidad y
código de descuento (Enter si no tenés).
`

// Message is one chat history entry.
type Message struct {
	Role    string // "bot" or "user"
	Content string
	Time    time.Time
}

// Model is the bubbletea model for the chat session.
type Model struct {
	textinput textinput.Model
	viewport  viewport.Model
	styles    ui.Styles
	renderer  *glamour.TermRenderer

	session  *dialogue.Session
	history  []Message
	finished bool
	err      error

	width  int
	height int
	ready  bool
}

// New builds the chat model. The greeting is shown as the first bot
// message before any input is read.
func New(session *dialogue.Session, greeting string) Model {
	ti := textinput.New()
	ti.Placeholder = "Escribí tu consulta..."
	ti.Focus()
	ti.CharLimit = 280

	renderer, err := glamour.NewTermRenderer(
		glamour.WithAutoStyle(),
		glamour.WithWordWrap(78),
	)

	m := Model{
		textinput: ti,
		styles:    ui.DefaultStyles(),
		renderer:  renderer,
		session:   session,
	}
	if err != nil {
		m.renderer = nil
	}
	m.pushBot(greeting)
	return m
}

// Run starts the interactive chat and blocks until the session ends.
func Run(session *dialogue.Session, greeting string) error {
	p := tea.NewProgram(New(session, greeting), tea.WithAltScreen())
	_, err := p.Run()
	return err
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	return textinput.Blink
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var (
		tiCmd tea.Cmd
		vpCmd tea.Cmd
	)

	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.Type {
		case tea.KeyCtrlC, tea.KeyEsc:
			return m, tea.Quit
		case tea.KeyEnter:
			if m.finished {
				return m, tea.Quit
			}
			return m.submit()
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		headerHeight := 2
		footerHeight := 3
		if !m.ready {
			m.viewport = viewport.New(msg.Width, msg.Height-headerHeight-footerHeight)
			m.ready = true
		} else {
			m.viewport.Width = msg.Width
			m.viewport.Height = msg.Height - headerHeight - footerHeight
		}
		m.viewport.SetContent(m.renderHistory())
		m.viewport.GotoBottom()
	}

	m.textinput, tiCmd = m.textinput.Update(msg)
	m.viewport, vpCmd = m.viewport.Update(msg)
	return m, tea.Batch(tiCmd, vpCmd)
}

// submit handles one Enter keypress: slash commands locally, everything
// else through the session.
func (m Model) submit() (tea.Model, tea.Cmd) {
	input := m.textinput.Value()
	m.textinput.Reset()
	if strings.TrimSpace(input) == "" && !m.session.InOrderFlow() {
		// Outside the order flow an empty line is noise. Inside it, empty
		// input is meaningful (it declines the discount code).
		return m, nil
	}

	m.pushUser(input)

	if handled, cmd := m.handleCommand(input); handled {
		m.refresh()
		return m, cmd
	}

	reply, err := m.session.HandleLine(input)
	if err != nil {
		m.err = err
		m.refresh()
		return m, tea.Quit
	}

	for _, line := range reply.Lines {
		m.pushBot(line)
	}
	if reply.Prompt != "" {
		m.pushBot(reply.Prompt)
	}
	if reply.Finished {
		m.finish()
	}

	m.refresh()
	if m.finished {
		return m, tea.Quit
	}
	return m, nil
}

// handleCommand intercepts local slash commands; they never reach the
// classifier.
func (m *Model) handleCommand(input string) (bool, tea.Cmd) {
	switch strings.TrimSpace(strings.ToLower(input)) {
	case "/help":
		m.pushBot(m.renderMarkdown(helpMarkdown))
		return true, nil
	case "/stock":
		for _, line := range m.session.StockListing() {
			m.pushBot(line)
		}
		return true, nil
	case "/salir":
		m.finish()
		return true, tea.Quit
	default:
		return false, nil
	}
}

// finish appends the confirmed-orders report and the farewell, after which
// the next render is the last.
func (m *Model) finish() {
	for _, line := range m.session.Report() {
		m.pushBot(line)
	}
	m.pushBot(farewell)
	m.finished = true
}

func (m *Model) pushBot(content string) {
	m.history = append(m.history, Message{Role: "bot", Content: content, Time: time.Now()})
}

func (m *Model) pushUser(content string) {
	m.history = append(m.history, Message{Role: "user", Content: content, Time: time.Now()})
}

func (m *Model) refresh() {
	if !m.ready {
		return
	}
	m.viewport.SetContent(m.renderHistory())
	m.viewport.GotoBottom()
}

func (m *Model) renderMarkdown(md string) string {
	if m.renderer == nil {
		return md
	}
	out, err := m.renderer.Render(md)
	if err != nil {
		return md
	}
	return strings.TrimRight(out, "\n")
}

func (m *Model) renderHistory() string {
	var b strings.Builder
	for _, msg := range m.history {
		switch msg.Role {
		case "user":
			b.WriteString(m.styles.User.Render("Vos: "))
			b.WriteString(m.styles.UserText.Render(msg.Content))
		default:
			b.WriteString(m.styles.Bot.Render("Bot: "))
			b.WriteString(m.styles.BotText.Render(msg.Content))
		}
		b.WriteString("\n")
	}
	return b.String()
}

// View implements tea.Model.
func (m Model) View() string {
	if !m.ready {
		return "Preparando FrozenBOT..."
	}

	var b strings.Builder
	b.WriteString(m.styles.Title.Render("FrozenBOT · Frozen SRL"))
	b.WriteString("\n\n")
	b.WriteString(m.viewport.View())
	b.WriteString("\n")

	if m.err != nil {
		b.WriteString(m.styles.Err.Render(fmt.Sprintf("error: %v", m.err)))
		b.WriteString("\n")
	}

	if m.finished {
		b.WriteString(m.styles.Status.Render("Sesión terminada. Presioná Enter para salir."))
	} else {
		b.WriteString(m.styles.PromptBar.Render("> "))
		b.WriteString(m.textinput.View())
		b.WriteString("\n")
		b.WriteString(m.styles.Status.Render("/help para ayuda · Esc para salir"))
	}
	return b.String()
}
