package cli

import "github.com/spf13/cobra"

var (
	version = "dev"
	commit  = "none"
)

func newRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:           "visacheckout",
		Short:         "Checkout for visa service packages",
		Long:          "visacheckout prices visa service packages and runs the Telegram checkout bot.",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	cmd.AddCommand(newBotCmd())
	cmd.AddCommand(newQuoteCmd())
	cmd.AddCommand(newVersionCmd())
	return cmd
}

// NewRootCmdForTest returns the root command for testing.
func NewRootCmdForTest() *cobra.Command {
	return newRootCmd()
}

func Execute() error {
	return newRootCmd().Execute()
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Run: func(cmd *cobra.Command, args []string) {
			cmd.Printf("visacheckout %s (%s)\n", version, commit)
		},
	}
}
