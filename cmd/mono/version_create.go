package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"strings"

	"github.com/Masterminds/semver/v3"
	"github.com/charmbracelet/huh"
	"github.com/spf13/cobra"

	"github.com/relcraft/mono/internal/gitrepo"
	"github.com/relcraft/mono/internal/increment"
	"github.com/relcraft/mono/internal/workspace"
)

var versionCreateCmd = &cobra.Command{
	Use:   "create",
	Short: "Compute, confirm, and cut a new release",
	RunE:  runVersionCreate,
}

// errNothingToRelease is returned when every package's increment slot is
// unset after folding in the unreleased commit range.
var errNothingToRelease = errors.New("nothing to release")

func runVersionCreate(cmd *cobra.Command, args []string) error {
	app, err := loadApp(cmd)
	if err != nil {
		return err
	}

	vs, err := gitrepo.NewVersionSet(app.repo)
	if err != nil {
		return err
	}
	rng, err := vs.Commits("")
	if err != nil {
		return err
	}
	cs, err := app.buildChangeset(context.Background(), rng)
	if err != nil {
		return err
	}

	current := cs.Increments()
	if allNone(current) {
		return errNothingToRelease
	}

	clean, err := app.repo.IsClean()
	if err != nil {
		return err
	}
	if !clean {
		return errors.New("working tree is not clean")
	}
	onDefault, err := app.repo.OnDefaultBranch()
	if err != nil {
		return err
	}
	if !onDefault {
		return errors.New("not on the default branch")
	}

	out := cmd.OutOrStdout()
	projects := app.ws.Projects()
	names := make([]string, len(projects))
	for i, p := range projects {
		names[i] = p.Name
	}

	fmt.Fprintln(out, "Proposed changes:")
	for i, inc := range current {
		if inc == increment.None {
			continue
		}
		fmt.Fprintf(out, "  %s: %s\n", names[i], inc)
	}

	var confirmed bool
	if err := huh.NewConfirm().
		Title("Proceed with this release?").
		Affirmative("Yes").
		Negative("No").
		Value(&confirmed).
		Run(); err != nil {
		return fmt.Errorf("confirm release: %w", err)
	}
	if !confirmed {
		fmt.Fprintln(out, "aborted")
		return nil
	}

	final, err := workspace.Propagate(app.ws.Graph(), current, names, interactiveDecide)
	if err != nil {
		return fmt.Errorf("propagate increments: %w", err)
	}

	headline, ok := headlineVersion(app.ws, final)
	if !ok {
		return errNothingToRelease
	}

	branch := "release/v" + headline.String()
	if err := app.repo.Branch(branch); err != nil {
		return fmt.Errorf("create release branch: %w", err)
	}

	if err := app.ws.Bump(final); err != nil {
		return fmt.Errorf("bump manifests: %w", err)
	}

	summary, err := cs.Summary(gitrepo.TrimTrailers)
	if err != nil {
		summary = ""
	}
	message := "chore: release v" + headline.String()
	if summary != "" {
		message += "\n\n" + summary
	}

	message, err = editMessage(message)
	if err != nil {
		return fmt.Errorf("edit release message: %w", err)
	}

	if err := app.repo.Stage("."); err != nil {
		return fmt.Errorf("stage release changes: %w", err)
	}
	commitID, err := app.repo.Commit(message)
	if err != nil {
		return fmt.Errorf("commit release: %w", err)
	}

	fmt.Fprintf(out, "released v%s on %s (%s)\n", headline.String(), branch, commitID[:7])
	return nil
}

// interactiveDecide prompts once per dependent package via huh.Select,
// populated from the Suggestion's option list, and returns the chosen
// increment. A single-option suggestion needs no prompt.
func interactiveDecide(s workspace.Suggestion) increment.Kind {
	if len(s.Options) == 1 {
		return s.Options[0]
	}
	options := make([]huh.Option[increment.Kind], len(s.Options))
	for i, opt := range s.Options {
		options[i] = huh.NewOption(opt.String(), opt)
	}
	chosen := s.Options[len(s.Options)-1]
	_ = huh.NewSelect[increment.Kind]().
		Title(fmt.Sprintf("Release increment for %s", s.ProjectName)).
		Options(options...).
		Value(&chosen).
		Run()
	return chosen
}

// headlineVersion takes the graph's sink with the highest resulting
// increment as the release's headline version.
func headlineVersion(ws *workspace.Workspace, final []increment.Kind) (*semver.Version, bool) {
	best := -1
	for _, sink := range ws.Graph().Sinks() {
		if final[sink] == increment.None {
			continue
		}
		if best < 0 || final[sink] > final[best] {
			best = sink
		}
	}
	if best < 0 {
		return nil, false
	}
	cur, ok := ws.Projects()[best].Manifest.Version()
	if !ok {
		return nil, false
	}
	return increment.Bump(cur, final[best]), true
}

func allNone(ks []increment.Kind) bool {
	for _, k := range ks {
		if k != increment.None {
			return false
		}
	}
	return true
}

// editMessage writes message to a temp file and opens it in $EDITOR (falling
// back to $VISUAL, then common defaults), returning the edited content.
func editMessage(message string) (string, error) {
	editor := os.Getenv("EDITOR")
	if editor == "" {
		editor = os.Getenv("VISUAL")
	}
	if editor == "" {
		for _, candidate := range []string{"vim", "vi", "nano"} {
			if _, err := exec.LookPath(candidate); err == nil {
				editor = candidate
				break
			}
		}
	}
	if editor == "" {
		return message, nil
	}

	tmp, err := os.CreateTemp("", "mono-release-*.txt")
	if err != nil {
		return "", fmt.Errorf("create temp file: %w", err)
	}
	tmpPath := tmp.Name()
	defer func() { _ = os.Remove(tmpPath) }()

	if _, err := tmp.WriteString(message); err != nil {
		_ = tmp.Close()
		return "", fmt.Errorf("write temp file: %w", err)
	}
	_ = tmp.Close()

	parts := strings.Fields(editor)
	editorCmd := exec.Command(parts[0], append(parts[1:], tmpPath)...) //nolint:gosec // G204: editor from trusted $EDITOR/$VISUAL env or known defaults
	editorCmd.Stdin = os.Stdin
	editorCmd.Stdout = os.Stdout
	editorCmd.Stderr = os.Stderr
	if err := editorCmd.Run(); err != nil {
		return "", fmt.Errorf("run editor: %w", err)
	}

	edited, err := os.ReadFile(tmpPath)
	if err != nil {
		return "", fmt.Errorf("read edited message: %w", err)
	}
	return string(edited), nil
}
