package cache

import "github.com/spf13/cobra"

var Command = &cobra.Command{
	Use:   "cache",
	Short: "Repodata cache utilities",
}

func init() {
	Command.AddCommand(listCmd)
}
