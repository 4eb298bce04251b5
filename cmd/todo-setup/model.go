package main

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"io"
	"strings"
	"time"

	"todo-server/db"
	"todo-server/services"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"
	"github.com/joho/godotenv"
)

// Styles
var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("205")).
			MarginBottom(1)

	hintStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("241"))

	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("196")).
			Bold(true)

	successStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("42")).
			Bold(true)

	inputStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("86"))

	promptStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("205")).
			Bold(true)
)

type step int

const (
	stepEnteringSecret step = iota
	stepEnteringDatabaseURL
	stepEnteringWeatherKey
	stepEnteringPort
	stepCheckingDatabase
	stepCheckingWeather
	stepWriting
	stepComplete
)

const defaultPort = "3000"

// checks are swapped out in tests
type checks struct {
	database func(dsn string) error
	weather  func(apiKey string) error
	write    func(env map[string]string, path string) error
}

type model struct {
	step         step
	envPath      string
	secret       string
	databaseURL  string
	weatherKey   string
	port         string
	defaultValue string
	currentInput string
	message      string
	quitting     bool
	checks       checks
}

type checkPassedMsg struct{ label string }
type writtenMsg struct{}
type errMsg struct{ err error }

func (e errMsg) Error() string { return e.err.Error() }

func initialModel(envPath string) model {
	return model{
		step:         stepEnteringSecret,
		envPath:      envPath,
		defaultValue: generateSecret(),
		checks: checks{
			database: checkDatabase,
			weather:  checkWeather,
			write:    godotenv.Write,
		},
	}
}

func generateSecret() string {
	b := make([]byte, 32)
	if _, err := rand.Read(b); err != nil {
		return ""
	}
	return hex.EncodeToString(b)
}

// checkDatabase connects once, which also creates the schema.
func checkDatabase(dsn string) error {
	database, err := db.Connect(dsn, false, log.New(io.Discard))
	if err != nil {
		return err
	}
	return database.Close()
}

func checkWeather(apiKey string) error {
	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	_, err := services.NewWeatherClient(apiKey).Current(ctx, "London")
	return err
}

func (m model) runDatabaseCheck() tea.Cmd {
	return func() tea.Msg {
		if err := m.checks.database(m.databaseURL); err != nil {
			return errMsg{fmt.Errorf("database check failed: %w", err)}
		}
		return checkPassedMsg{label: "database"}
	}
}

func (m model) runWeatherCheck() tea.Cmd {
	return func() tea.Msg {
		if err := m.checks.weather(m.weatherKey); err != nil {
			return errMsg{fmt.Errorf("weather key check failed: %w", err)}
		}
		return checkPassedMsg{label: "weather"}
	}
}

func (m model) writeEnv() tea.Cmd {
	return func() tea.Msg {
		env := map[string]string{
			"SESSION_SECRET":  m.secret,
			"DB_URL":          m.databaseURL,
			"WEATHER_API_KEY": m.weatherKey,
			"PORT":            m.port,
		}
		if err := m.checks.write(env, m.envPath); err != nil {
			return errMsg{fmt.Errorf("could not write %s: %w", m.envPath, err)}
		}
		return writtenMsg{}
	}
}

func (m model) Init() tea.Cmd {
	return nil
}

func (m model) inputStep() bool {
	return m.step <= stepEnteringPort
}

// accept takes the typed value, or the default when nothing was typed.
func (m *model) accept() (string, bool) {
	v := strings.TrimSpace(m.currentInput)
	if v == "" {
		v = m.defaultValue
	}
	if v == "" {
		return "", false
	}
	m.currentInput = ""
	m.defaultValue = ""
	return v, true
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.Type {
		case tea.KeyCtrlC, tea.KeyEsc:
			m.quitting = true
			return m, tea.Quit

		case tea.KeyBackspace:
			if len(m.currentInput) > 0 {
				r := []rune(m.currentInput)
				m.currentInput = string(r[:len(r)-1])
			}

		case tea.KeyRunes, tea.KeySpace:
			if m.inputStep() {
				m.currentInput += string(msg.Runes)
			}

		case tea.KeyEnter:
			switch m.step {
			case stepEnteringSecret:
				if v, ok := m.accept(); ok {
					m.secret = v
					m.step = stepEnteringDatabaseURL
				}

			case stepEnteringDatabaseURL:
				if v, ok := m.accept(); ok {
					m.databaseURL = v
					m.step = stepEnteringWeatherKey
				}

			case stepEnteringWeatherKey:
				if v, ok := m.accept(); ok {
					m.weatherKey = v
					m.defaultValue = defaultPort
					m.step = stepEnteringPort
				}

			case stepEnteringPort:
				if v, ok := m.accept(); ok {
					m.port = v
					m.step = stepCheckingDatabase
					m.message = "Connecting to the database..."
					return m, m.runDatabaseCheck()
				}

			case stepComplete:
				m.quitting = true
				return m, tea.Quit
			}
		}

	case checkPassedMsg:
		switch msg.label {
		case "database":
			m.step = stepCheckingWeather
			m.message = successStyle.Render("✓ Database reachable") + "\nChecking the weather API key..."
			return m, m.runWeatherCheck()
		case "weather":
			m.step = stepWriting
			m.message = successStyle.Render("✓ Weather API key accepted") + "\nWriting " + m.envPath + "..."
			return m, m.writeEnv()
		}

	case writtenMsg:
		m.step = stepComplete
		m.message = successStyle.Render("✓ Configuration written to " + m.envPath)

	case errMsg:
		// Send the user back to the value that failed
		m.message = errorStyle.Render("✗ " + msg.err.Error())
		switch m.step {
		case stepCheckingDatabase:
			m.defaultValue = m.databaseURL
			m.step = stepEnteringDatabaseURL
		case stepCheckingWeather:
			m.defaultValue = m.weatherKey
			m.step = stepEnteringWeatherKey
		default:
			m.step = stepComplete
		}
	}

	return m, nil
}

func (m model) View() string {
	if m.quitting {
		return ""
	}

	var s strings.Builder

	s.WriteString(titleStyle.Render("To Do server setup"))
	s.WriteString("\n\n")

	if m.inputStep() && m.message != "" {
		s.WriteString(m.message + "\n\n")
	}

	switch m.step {
	case stepEnteringSecret:
		s.WriteString(promptStyle.Render("Session secret:") + "\n")
		s.WriteString(inputStyle.Render("> " + strings.Repeat("•", len(m.currentInput))))
		s.WriteString("\n" + hintStyle.Render("Leave empty to use a generated secret") + "\n")

	case stepEnteringDatabaseURL:
		s.WriteString(promptStyle.Render("PostgreSQL connection URL:") + "\n")
		s.WriteString(inputStyle.Render("> " + m.currentInput))
		if m.defaultValue != "" {
			s.WriteString("\n" + hintStyle.Render("Leave empty to keep "+m.defaultValue))
		}
		s.WriteString("\n")

	case stepEnteringWeatherKey:
		s.WriteString(promptStyle.Render("OpenWeatherMap API key:") + "\n")
		s.WriteString(inputStyle.Render("> " + m.currentInput))
		s.WriteString("\n")

	case stepEnteringPort:
		s.WriteString(promptStyle.Render("Listen port:") + "\n")
		s.WriteString(inputStyle.Render("> " + m.currentInput))
		s.WriteString("\n" + hintStyle.Render("Leave empty for "+m.defaultValue) + "\n")

	case stepCheckingDatabase, stepCheckingWeather, stepWriting:
		s.WriteString(m.message + "\n")

	case stepComplete:
		s.WriteString(m.message + "\n")
		s.WriteString("\nPress Enter to exit\n")
	}

	if m.inputStep() {
		s.WriteString("\nPress Enter to continue, Esc to quit\n")
	}

	return s.String()
}
