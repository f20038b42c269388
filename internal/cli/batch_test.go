package cli

import "testing"

// Every flag runBatch consults must be registered on the batch command
// itself; flags defined only on the check command are invisible here.
func TestBatchCommand_Flags(t *testing.T) {
	for _, name := range []string{
		"concurrency", "output-dir", "timeout", "files-per-second",
		"max-bytes", "no-cache", "cache-dir", "no-footer", "exit-zero",
		"llm", "llm-provider", "llm-model",
	} {
		if batchCmd.Flags().Lookup(name) == nil {
			t.Errorf("batch command is missing flag --%s", name)
		}
	}
}
