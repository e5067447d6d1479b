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
	serverURL     string
	ownerEmail    string
	baseHeartRate int
	interval      time.Duration
)

// The simulator drives the real agent loop against a synthetic frame source,
// so the full register-parse-submit path is exercised without hardware.
var rootCmd = &cobra.Command{
	Use:   "ecg-simulator",
	Short: "Streams synthetic ECG readings to the MediPulse backend",
	RunE: func(cmd *cobra.Command, args []string) error {
		log, err := logger.New("info", "console", "ecg-simulator")
		if err != nil {
			return err
		}
		defer log.Sync()

		client := agent.NewClient(serverURL, agent.DefaultSubmitTimeout)
		opener := func() (agent.FrameSource, error) {
			return agent.NewSimulatedSource(baseHeartRate, interval), nil
		}

		a := agent.New(agent.Config{
			OwnerEmail:  ownerEmail,
			DeviceLabel: "ESP32 ECG Monitor (Simulator)",
		}, client, opener, log)

		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		if err := a.Run(ctx); err != nil && ctx.Err() == nil {
			return err
		}
		return nil
	},
}

func init() {
	rootCmd.Flags().StringVar(&serverURL, "server", "http://localhost:8000", "MediPulse backend base URL")
	rootCmd.Flags().StringVar(&ownerEmail, "email", "", "patient account email to stream readings for")
	rootCmd.Flags().IntVar(&baseHeartRate, "base-hr", 72, "baseline heart rate for the synthetic signal")
	rootCmd.Flags().DurationVar(&interval, "interval", 2*time.Second, "delay between synthetic frames")
	_ = rootCmd.MarkFlagRequired("email")
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}
