package main

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/shubhankarvyas/medipulse-ai-insight/agent"
	"github.com/shubhankarvyas/medipulse-ai-insight/logger"
	"github.com/spf13/cobra"
)

var (
	serverURL   string
	serialPort  string
	baudRate    int
	ownerEmail  string
	deviceLabel string
	timeout     time.Duration
)

var rootCmd = &cobra.Command{
	Use:   "medipulse-agent",
	Short: "Reads ECG frames from the bedside sensor and forwards them to the MediPulse backend",
	RunE: func(cmd *cobra.Command, args []string) error {
		log, err := logger.NewFromEnv("medipulse-agent")
		if err != nil {
			return err
		}
		defer log.Sync()

		client := agent.NewClient(serverURL, timeout)
		opener := func() (agent.FrameSource, error) {
			return agent.OpenSerial(serialPort, baudRate)
		}

		a := agent.New(agent.Config{
			OwnerEmail:  ownerEmail,
			DeviceLabel: deviceLabel,
		}, client, opener, log)

		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		if err := a.Run(ctx); err != nil && ctx.Err() == nil {
			// Registration failure: fatal precondition, non-zero exit.
			return err
		}
		return nil
	},
}

func init() {
	rootCmd.Flags().StringVar(&serverURL, "server", "http://localhost:8000", "MediPulse backend base URL")
	rootCmd.Flags().StringVar(&serialPort, "port", "/dev/ttyUSB0", "serial port the sensor is attached to")
	rootCmd.Flags().IntVar(&baudRate, "baud", 9600, "serial baud rate")
	rootCmd.Flags().StringVar(&ownerEmail, "email", "", "patient account email the device belongs to")
	rootCmd.Flags().StringVar(&deviceLabel, "label", "ESP32 ECG Monitor", "device label shown on the dashboard")
	rootCmd.Flags().DurationVar(&timeout, "timeout", agent.DefaultSubmitTimeout, "per-request timeout for backend calls")
	_ = rootCmd.MarkFlagRequired("email")
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}
