package cli

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"AwarenessSimulator_SecurityProject/internal/scenario"

	"github.com/spf13/cobra"
)

var validateCmd = &cobra.Command{
	Use:   "validate <file>...",
	Short: "Validate scenario files",
	Long:  `Decodes each YAML or JSON scenario file and reports whether it can be played.`,
	Args:  cobra.MinimumNArgs(1),
	RunE:  runValidate,
}

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List available scenarios",
	Long:  `Lists the built-in scenarios and those found in --dir.`,
	RunE:  runList,
}

func runValidate(cmd *cobra.Command, args []string) error {
	out := cmd.OutOrStdout()
	failed := 0
	for _, path := range args {
		script, err := loadFile(path)
		if err != nil {
			failed++
			fmt.Fprintf(out, "FAIL %s: %v\n", path, err)
			continue
		}
		fmt.Fprintf(out, "ok   %s (%s, %d steps)\n", path, script.Kind, script.StepCount())
	}
	if failed > 0 {
		return fmt.Errorf("%d of %d scenario files are invalid", failed, len(args))
	}
	return nil
}

func runList(cmd *cobra.Command, args []string) error {
	registry, err := loadRegistry()
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	scripts := registry.List()
	if len(scripts) == 0 {
		fmt.Fprintln(out, "No scenarios found")
		return nil
	}
	fmt.Fprintln(out, "Available scenarios:")
	fmt.Fprintln(out)
	for _, s := range scripts {
		fmt.Fprintf(out, "  %-28s %-6s %s\n", s.Key, s.Kind, s.Title)
	}
	fmt.Fprintln(out)
	return nil
}

func loadRegistry() (*scenario.Registry, error) {
	registry, err := scenario.NewBuiltinRegistry()
	if err != nil {
		return nil, fmt.Errorf("failed to load scenarios: %w", err)
	}
	if scenarioDir != "" {
		if err := registry.LoadFromFS(os.DirFS(scenarioDir), "."); err != nil {
			return nil, fmt.Errorf("failed to load scenarios: %w", err)
		}
	}
	return registry, nil
}

// loadFile decodes a scenario file; .json files use the lesson record shape.
func loadFile(path string) (scenario.Script, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return scenario.Script{}, err
	}
	var script scenario.Script
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		script, err = scenario.Decode(data)
	case ".yaml", ".yml":
		script, err = scenario.DecodeYAML(data)
	default:
		return scenario.Script{}, errors.New("unsupported file type, want .yaml, .yml or .json")
	}
	if err != nil {
		return scenario.Script{}, err
	}
	if script.Key == "" {
		script.Key = strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	}
	return script, nil
}

// resolveScript accepts a catalog key or a path to a scenario file.
func resolveScript(arg string) (scenario.Script, error) {
	if _, err := os.Stat(arg); err == nil {
		return loadFile(arg)
	}
	registry, err := loadRegistry()
	if err != nil {
		return scenario.Script{}, err
	}
	script, ok := registry.Get(arg)
	if !ok {
		return scenario.Script{}, fmt.Errorf("scenario not found: %s", arg)
	}
	return script, nil
}
