package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"cobuilt/quote-bot/internal/app"
)

var rootCmd = &cobra.Command{
	Use:   "quote-bot",
	Short: "Telegram bot for concrete delivery quotes",
	Long:  "quote-bot walks users through building a concrete delivery quote, routes it through admin approval and delivers the final PDF.",
}

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the webhook server",
	Run: func(cmd *cobra.Command, args []string) {
		app.Run()
	},
}

func main() {
	rootCmd.AddCommand(serveCmd)
	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}
