package main

import (
	"github.com/matsen/kv/internal/kvstore"
	"github.com/spf13/cobra"
)

var (
	deleteKey   string
	deleteValue string
)

func init() {
	rootCmd.AddCommand(deleteCmd)
	deleteCmd.Flags().StringVarP(&deleteKey, "key", "k", "", "Key to remove")
	deleteCmd.Flags().StringVarP(&deleteValue, "value", "v", "", "Remove the first key holding this value")
}

var deleteCmd = &cobra.Command{
	Use:   "delete",
	Short: "Remove entries by key, by value, or both",
	Long: `Remove the entry for --key, and/or the first entry whose value is --value.

When both flags are given the key is removed first, then the value is
searched among the remaining entries. Each removal is written immediately.
Keys or values that match nothing are not an error.

Examples:
  kv delete --key user
  kv delete --value alice
  kv delete --key user --value bob`,
	Args: cobra.NoArgs,
	RunE: runDelete,
}

func runDelete(cmd *cobra.Command, args []string) error {
	key := optionalFlag(cmd, "key", deleteKey)
	value := optionalFlag(cmd, "value", deleteValue)
	if key == nil && value == nil {
		exitWithError(ExitError, "%v", kvstore.ErrNothingToDelete)
	}

	s, repo := mustOpenStore()
	defer repo.Close()

	resp, err := remove(s, key, value)
	exitOnStoreError(err)
	return outputJSON(resp)
}

// remove deletes by key and/or value and builds the response.
func remove(s *kvstore.Store, key, value *string) (DeleteResponse, error) {
	result, err := s.Delete(key, value)
	if err != nil {
		return DeleteResponse{}, err
	}
	return DeleteResponse{Status: "deleted", Removed: result.Removed}, nil
}
