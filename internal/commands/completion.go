package commands

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/urfave/cli/v3"

	"github.com/colonyops/threads/internal/data/source"
)

// CommentFileCompleter suggests comment files in the directory being typed.
// Only files with a supported extension are listed.
//
// When the user's last typed argument starts with "-", it falls back to the
// default flag completion behavior.
func CommentFileCompleter() cli.ShellCompleteFunc {
	return func(ctx context.Context, cmd *cli.Command) {
		prefix := ""
		if args := cmd.Args(); args.Present() {
			prefix = args.Slice()[args.Len()-1]
			if strings.HasPrefix(prefix, "-") {
				cli.DefaultCompleteWithFlags(ctx, cmd)
				return
			}
		}

		w := cmd.Root().Writer
		for _, name := range commentFiles(prefix) {
			_, _ = fmt.Fprintln(w, name)
		}
	}
}

// commentFiles lists directories and supported comment files that start
// with prefix.
func commentFiles(prefix string) []string {
	dir := filepath.Dir(prefix)
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil
	}

	var out []string
	for _, e := range entries {
		name := e.Name()
		if strings.HasPrefix(name, ".") {
			continue
		}
		path := name
		if dir != "." {
			path = filepath.Join(dir, name)
		}
		if !strings.HasPrefix(path, prefix) {
			continue
		}
		if e.IsDir() {
			out = append(out, path+string(filepath.Separator))
			continue
		}
		if _, err := source.DetectFormat(name); err == nil {
			out = append(out, path)
		}
	}
	return out
}
