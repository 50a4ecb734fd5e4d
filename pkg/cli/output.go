package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"sort"
	"text/tabwriter"

	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/faultline/pkg/domain/model"
	"github.com/secmon-lab/faultline/pkg/domain/types"
)

const maxTitleWidth = 60

// printIssuesJSON writes the raw issue objects as a JSON array
func printIssuesJSON(w io.Writer, candidates []*model.Candidate) error {
	issues := make([]*model.Issue, 0, len(candidates))
	for _, c := range candidates {
		issues = append(issues, c.Issue)
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(issues); err != nil {
		return goerr.Wrap(err, "failed to encode issues")
	}
	return nil
}

// printIssuesTable writes a human-readable issue table. The alias column
// only appears when the result spans multiple projects.
func printIssuesTable(w io.Writer, candidates []*model.Candidate) {
	if len(candidates) == 0 {
		fmt.Fprintln(w, "No issues found.")
		return
	}

	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	multi := candidates[0].Format.MultiProject

	if multi {
		fmt.Fprintln(tw, "PROJECT\tISSUE\tTITLE\tPRIORITY\tEVENTS\tUSERS\tLAST SEEN")
	} else {
		fmt.Fprintln(tw, "ISSUE\tTITLE\tPRIORITY\tEVENTS\tUSERS\tLAST SEEN")
	}

	for _, c := range candidates {
		id := c.Issue.ShortID
		if id == "" {
			id = c.Issue.ID.String()
		}
		if multi {
			fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%d\t%d\t%s\n",
				c.Format.Alias, id, truncate(c.Issue.Title, maxTitleWidth),
				c.Issue.Priority, c.Issue.Count, c.Issue.UserCount, c.Issue.LastSeen)
		} else {
			fmt.Fprintf(tw, "%s\t%s\t%s\t%d\t%d\t%s\n",
				id, truncate(c.Issue.Title, maxTitleWidth),
				c.Issue.Priority, c.Issue.Count, c.Issue.UserCount, c.Issue.LastSeen)
		}
	}
	_ = tw.Flush()
}

// printAliasTable writes the alias to target mapping
func printAliasTable(w io.Writer, aliases *model.AliasSet) {
	keys := make([]string, 0, aliases.Len())
	for alias := range aliases.Entries {
		keys = append(keys, alias.String())
	}
	sort.Strings(keys)

	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "ALIAS\tORG\tPROJECT")
	for _, k := range keys {
		target := aliases.Entries[types.Alias(k)]
		fmt.Fprintf(tw, "%s\t%s\t%s\n", k, target.Org, target.Project)
	}
	_ = tw.Flush()
}

// truncate shortens s to at most n runes with an ellipsis
func truncate(s string, n int) string {
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	return string(runes[:n-1]) + "…"
}
