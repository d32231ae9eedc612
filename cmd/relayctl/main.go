package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/franzego/slackrelay/internal/client"
	"github.com/spf13/cobra"
)

var relayURL string

var rootCmd = &cobra.Command{
	Use:           "relayctl",
	Short:         "Send, update, delete and read Slack messages through the relay",
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	defaultURL := os.Getenv("RELAY_URL")
	if defaultURL == "" {
		defaultURL = "http://localhost:5000"
	}
	rootCmd.PersistentFlags().StringVar(&relayURL, "relay", defaultURL, "relay base URL")

	rootCmd.AddCommand(sendCmd(), updateCmd(), deleteCmd(), retrieveCmd(), rescheduleCmd(), scheduledCmd())
}

func sendCmd() *cobra.Command {
	var form client.Form
	var at string
	cmd := &cobra.Command{
		Use:   "send",
		Short: "Send a message now, or schedule it with --at",
		RunE: func(cmd *cobra.Command, args []string) error {
			form.Action = "send"
			if at != "" {
				when, err := time.Parse(time.RFC3339, at)
				if err != nil {
					return fmt.Errorf("--at must be RFC 3339: %w", err)
				}
				form.ScheduledTime = &when
			}
			return submit(cmd, &form)
		},
	}
	cmd.Flags().StringVar(&form.Channel, "channel", "", "channel ID")
	cmd.Flags().StringVar(&form.Text, "text", "", "message text")
	cmd.Flags().StringVar(&at, "at", "", "schedule for this time (RFC 3339)")
	return cmd
}

func updateCmd() *cobra.Command {
	var form client.Form
	cmd := &cobra.Command{
		Use:   "update",
		Short: "Edit a sent message",
		RunE: func(cmd *cobra.Command, args []string) error {
			form.Action = "update"
			return submit(cmd, &form)
		},
	}
	cmd.Flags().StringVar(&form.Channel, "channel", "", "channel ID")
	cmd.Flags().StringVar(&form.MessageTS, "ts", "", "message timestamp")
	cmd.Flags().StringVar(&form.Text, "text", "", "new message text")
	return cmd
}

func deleteCmd() *cobra.Command {
	var action client.DeleteAction
	cmd := &cobra.Command{
		Use:   "delete",
		Short: "Delete a sent message (--ts) or a scheduled one (--scheduled-id)",
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd, action)
		},
	}
	cmd.Flags().StringVar(&action.Channel, "channel", "", "channel ID")
	cmd.Flags().StringVar(&action.TS, "ts", "", "message timestamp")
	cmd.Flags().StringVar(&action.ScheduledMessageID, "scheduled-id", "", "scheduled message ID")
	return cmd
}

func retrieveCmd() *cobra.Command {
	var form client.Form
	cmd := &cobra.Command{
		Use:   "retrieve",
		Short: "Fetch the message at or before --ts",
		RunE: func(cmd *cobra.Command, args []string) error {
			form.Action = "retrieve"
			return submit(cmd, &form)
		},
	}
	cmd.Flags().StringVar(&form.Channel, "channel", "", "channel ID")
	cmd.Flags().StringVar(&form.MessageTS, "ts", "", "message timestamp")
	return cmd
}

func rescheduleCmd() *cobra.Command {
	var channel, id, text, at string
	cmd := &cobra.Command{
		Use:   "reschedule",
		Short: "Replace a scheduled message with new text and time",
		RunE: func(cmd *cobra.Command, args []string) error {
			when, err := time.Parse(time.RFC3339, at)
			if err != nil {
				return fmt.Errorf("--at must be RFC 3339: %w", err)
			}
			result, err := client.New(relayURL).Reschedule(cmd.Context(), channel, id, text, when)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), result.Pretty())
			return nil
		},
	}
	cmd.Flags().StringVar(&channel, "channel", "", "channel ID")
	cmd.Flags().StringVar(&id, "scheduled-id", "", "scheduled message ID")
	cmd.Flags().StringVar(&text, "text", "", "new message text")
	cmd.Flags().StringVar(&at, "at", "", "new delivery time (RFC 3339)")
	for _, name := range []string{"channel", "scheduled-id", "text", "at"} {
		_ = cmd.MarkFlagRequired(name)
	}
	return cmd
}

func scheduledCmd() *cobra.Command {
	var channel string
	cmd := &cobra.Command{
		Use:   "scheduled",
		Short: "List scheduled messages for a channel",
		RunE: func(cmd *cobra.Command, args []string) error {
			result, err := client.New(relayURL).ListScheduled(cmd.Context(), channel)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), result.Pretty())
			return nil
		},
	}
	cmd.Flags().StringVar(&channel, "channel", "", "channel ID")
	_ = cmd.MarkFlagRequired("channel")
	return cmd
}

func submit(cmd *cobra.Command, form *client.Form) error {
	action, result, err := form.Submit(cmd.Context(), client.New(relayURL))
	if err != nil {
		return err
	}
	printResult(cmd, action, result)
	return nil
}

func run(cmd *cobra.Command, action client.Action) error {
	result, err := client.New(relayURL).Do(cmd.Context(), action)
	if err != nil {
		return err
	}
	printResult(cmd, action, result)
	return nil
}

func printResult(cmd *cobra.Command, action client.Action, result *client.Result) {
	out := cmd.OutOrStdout()
	fmt.Fprintln(out, client.Banner(action))
	fmt.Fprintln(out, result.Pretty())
}

func main() {
	if err := rootCmd.ExecuteContext(context.Background()); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}
