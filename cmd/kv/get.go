package main

import (
	"github.com/matsen/kv/internal/kvstore"
	"github.com/spf13/cobra"
)

var getKey string

func init() {
	rootCmd.AddCommand(getCmd)
	getCmd.Flags().StringVarP(&getKey, "key", "k", "", "Key to look up (omit to print every entry)")
}

var getCmd = &cobra.Command{
	Use:   "get",
	Short: "Print a value, or the whole store",
	Long: `Print the value stored under --key, or every entry if --key is omitted.

A missing key is an error. get never modifies the database.

Examples:
  kv get --key user
  kv get`,
	Args: cobra.NoArgs,
	RunE: runGet,
}

func runGet(cmd *cobra.Command, args []string) error {
	s, repo := mustOpenStore()
	defer repo.Close()

	result, err := lookup(s, optionalFlag(cmd, "key", getKey))
	exitOnStoreError(err)
	return outputJSON(result)
}

// lookup returns the value for key, or the whole mapping when key is nil.
func lookup(s *kvstore.Store, key *string) (any, error) {
	if key == nil {
		return s.All()
	}
	return s.Get(*key)
}
