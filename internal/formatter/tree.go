package formatter

import (
	"github.com/xlab/treeprint"
)

// RenderTree renders the board as an ASCII tree: items as branches and
// options as leaves, with disabled entries marked.
func RenderTree(l Listing, noColor bool) string {
	tree := treeprint.NewWithRoot(rootLabel(l.Title))
	for _, it := range l.Items {
		label := it.ID + ": " + it.Name
		if it.Disabled {
			label += " (disabled)"
		}
		branch := tree.AddBranch(style(label, it.Disabled, noColor))
		if len(it.Options) == 0 {
			branch.AddNode(style("(no actions)", true, noColor))
			continue
		}
		for _, o := range it.Options {
			text := o.Label
			if o.Disabled {
				text += " (disabled)"
			}
			branch.AddNode(style(text, o.Disabled || it.Disabled, noColor))
		}
	}
	return tree.String()
}

func rootLabel(title string) string {
	if title == "" {
		return "."
	}
	return title
}

func style(s string, muted, noColor bool) string {
	if noColor {
		return s
	}
	if muted {
		return mutedStyle.Render(s)
	}
	return valueStyle.Render(s)
}
