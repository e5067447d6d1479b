package main

import (
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/shubhankarvyas/medipulse-ai-insight/agent"
)

const defaultServerURL = "http://localhost:8000"

// Styles
var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("205")).
			MarginBottom(1)

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
	stepEnteringEmail step = iota
	stepEnteringLabel
	stepRegistering
	stepComplete
)

type model struct {
	step         step
	serverURL    string
	email        string
	label        string
	currentInput string
	patientID    string
	deviceID     string
	message      string
	quitting     bool
}

type setupSuccessMsg struct {
	patientID string
	deviceID  string
}

type errMsg struct{ err error }

func (e errMsg) Error() string { return e.err.Error() }

func initialModel(serverURL string) model {
	return model{
		step:      stepEnteringEmail,
		serverURL: serverURL,
	}
}

func (m model) Init() tea.Cmd {
	return nil
}

func registerDevice(serverURL, email, label string) tea.Cmd {
	return func() tea.Msg {
		client := agent.NewClient(serverURL, agent.DefaultSubmitTimeout)
		result, err := client.SetupDevice(email, label)
		if err != nil {
			return errMsg{fmt.Errorf("could not reach backend at %s: %w", serverURL, err)}
		}
		if !result.Success {
			return errMsg{fmt.Errorf("registration refused: %s", result.Error)}
		}
		return setupSuccessMsg{patientID: result.PatientID, deviceID: result.DeviceID}
	}
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "esc":
			m.quitting = true
			return m, tea.Quit

		case "enter":
			switch m.step {
			case stepEnteringEmail:
				if m.currentInput == "" {
					m.message = "Email is required"
					return m, nil
				}
				m.email = m.currentInput
				m.currentInput = ""
				m.message = ""
				m.step = stepEnteringLabel
				return m, nil

			case stepEnteringLabel:
				m.label = m.currentInput
				if m.label == "" {
					m.label = "ESP32 ECG Monitor"
				}
				m.currentInput = ""
				m.message = ""
				m.step = stepRegistering
				return m, registerDevice(m.serverURL, m.email, m.label)

			case stepComplete:
				m.quitting = true
				return m, tea.Quit
			}

		case "backspace":
			if len(m.currentInput) > 0 {
				m.currentInput = m.currentInput[:len(m.currentInput)-1]
			}
			return m, nil

		default:
			if m.step == stepEnteringEmail || m.step == stepEnteringLabel {
				if len(msg.String()) == 1 {
					m.currentInput += msg.String()
				}
			}
			return m, nil
		}

	case setupSuccessMsg:
		m.patientID = msg.patientID
		m.deviceID = msg.deviceID
		m.step = stepComplete
		return m, nil

	case errMsg:
		m.message = msg.Error()
		m.currentInput = ""
		m.step = stepEnteringEmail
		return m, nil
	}

	return m, nil
}

func (m model) View() string {
	if m.quitting {
		return ""
	}

	s := titleStyle.Render("MediPulse ECG Device Setup") + "\n"

	switch m.step {
	case stepEnteringEmail:
		s += promptStyle.Render("Patient email: ") + inputStyle.Render(m.currentInput+"_") + "\n"
	case stepEnteringLabel:
		s += promptStyle.Render("Device label (enter for default): ") + inputStyle.Render(m.currentInput+"_") + "\n"
	case stepRegistering:
		s += "Registering device for " + m.email + "...\n"
	case stepComplete:
		s += successStyle.Render("Device registered!") + "\n"
		s += "  Patient ID: " + m.patientID + "\n"
		s += "  Device ID:  " + m.deviceID + "\n"
		s += "\nStart the agent with:\n"
		s += inputStyle.Render("  medipulse-agent --email "+m.email) + "\n"
		s += "\nPress enter to exit.\n"
	}

	if m.message != "" {
		s += "\n" + errorStyle.Render(m.message) + "\n"
	}
	return s
}

func main() {
	serverURL := defaultServerURL
	if env := os.Getenv("MEDIPULSE_SERVER_URL"); env != "" {
		serverURL = env
	}

	p := tea.NewProgram(initialModel(serverURL))
	if _, err := p.Run(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}
