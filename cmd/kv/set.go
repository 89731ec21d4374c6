package main

import (
	"github.com/matsen/kv/internal/kvstore"
	"github.com/spf13/cobra"
)

var (
	setKey   string
	setValue string
)

// missingKeyOrValue is printed when set is missing one of its flags.
const missingKeyOrValue = "missing key or value"

func init() {
	rootCmd.AddCommand(setCmd)
	setCmd.Flags().StringVarP(&setKey, "key", "k", "", "Key to set")
	setCmd.Flags().StringVarP(&setValue, "value", "v", "", "Value to store")
}

var setCmd = &cobra.Command{
	Use:   "set",
	Short: "Store a value under a key",
	Long: `Store --value under --key, replacing any existing value.

Both flags are required; empty strings are allowed. If either is missing,
nothing is written.

Example:
  kv set --key user --value alice`,
	Args: cobra.NoArgs,
	RunE: runSet,
}

func runSet(cmd *cobra.Command, args []string) error {
	key := optionalFlag(cmd, "key", setKey)
	value := optionalFlag(cmd, "value", setValue)
	if key == nil || value == nil {
		outputHuman(missingKeyOrValue)
		return nil
	}

	s, repo := mustOpenStore()
	defer repo.Close()

	resp, err := store(s, *key, *value)
	exitOnStoreError(err)
	return outputJSON(resp)
}

// store sets key to value and builds the response.
func store(s *kvstore.Store, key, value string) (SetResponse, error) {
	if err := s.Set(key, value); err != nil {
		return SetResponse{}, err
	}
	return SetResponse{Status: "set", Key: key, Value: value}, nil
}
