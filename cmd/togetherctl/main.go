package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var (
	apiFlag string
	keyFlag string
	rootCmd = &cobra.Command{
		Use:   "togetherctl",
		Short: "CLI client for the Together REST API",
	}
)

func main() {
	rootCmd.PersistentFlags().StringVarP(&apiFlag, "api", "a", "http://localhost:8080", "Together service base URL")
	rootCmd.PersistentFlags().StringVarP(&keyFlag, "key", "k", "", "API key (required)")

	activitiesCmd := &cobra.Command{
		Use:   "activities",
		Short: "List activities, newest first",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runListActivities(apiFlag, keyFlag, os.Stdout)
		},
	}
	rootCmd.AddCommand(activitiesCmd)

	addCmd := &cobra.Command{
		Use:   "add",
		Short: "Add a new activity",
		RunE: func(cmd *cobra.Command, args []string) error {
			title, _ := cmd.Flags().GetString("title")
			date, _ := cmd.Flags().GetString("date")
			typ, _ := cmd.Flags().GetString("type")
			location, _ := cmd.Flags().GetString("location")
			return runAddActivity(apiFlag, keyFlag, title, date, typ, location, os.Stdout)
		},
	}
	addCmd.Flags().StringP("title", "t", "", "Activity title (required)")
	addCmd.Flags().StringP("date", "d", "", "Activity date, RFC3339 (required)")
	addCmd.Flags().String("type", "date", "Activity type: date|trip|event|surprise")
	addCmd.Flags().StringP("location", "l", "", "Activity location")
	_ = addCmd.MarkFlagRequired("title")
	_ = addCmd.MarkFlagRequired("date")
	rootCmd.AddCommand(addCmd)

	notesCmd := &cobra.Command{
		Use:   "notes",
		Short: "List notes, newest first",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runListNotes(apiFlag, keyFlag, os.Stdout)
		},
	}
	rootCmd.AddCommand(notesCmd)

	upcomingCmd := &cobra.Command{
		Use:   "upcoming",
		Short: "Show the next three upcoming activities",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runUpcoming(apiFlag, keyFlag, os.Stdout)
		},
	}
	rootCmd.AddCommand(upcomingCmd)

	themeCmd := &cobra.Command{
		Use:   "theme",
		Short: "Show or toggle the UI theme",
		RunE: func(cmd *cobra.Command, args []string) error {
			toggle, _ := cmd.Flags().GetBool("toggle")
			return runTheme(apiFlag, keyFlag, toggle, os.Stdout)
		},
	}
	themeCmd.Flags().Bool("toggle", false, "Advance to the next theme")
	rootCmd.AddCommand(themeCmd)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
