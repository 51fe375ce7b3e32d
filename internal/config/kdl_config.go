package config

import (
	"strings"
	"time"

	kdl "github.com/sblinch/kdl-go"
	"github.com/sblinch/kdl-go/document"
)

// applyKDL parses content (the contents of a .astidx.kdl file) and
// overrides the fields it names on cfg, leaving everything else at its
// default. Recognized nodes:
//
//	cooldown_secs 2
//	batch_cap 32
//	poll_idle_ms 1000
//	resolve_poll_ms 100
//	resolve_recheck_ms 5000
//	parse_workers 0
//	exclude {
//		"**/node_modules/**"
//		"**/vendor/**"
//	}
func applyKDL(cfg *Config, content string) error {
	doc, err := kdl.Parse(strings.NewReader(content))
	if err != nil {
		return err
	}

	for _, n := range doc.Nodes {
		switch nodeName(n) {
		case "cooldown_secs":
			if v, ok := firstIntArg(n); ok {
				cfg.Cooldown = time.Duration(v) * time.Second
			}
		case "batch_cap":
			if v, ok := firstIntArg(n); ok {
				cfg.BatchCap = v
			}
		case "poll_idle_ms":
			if v, ok := firstIntArg(n); ok {
				cfg.PollIdle = time.Duration(v) * time.Millisecond
			}
		case "resolve_poll_ms":
			if v, ok := firstIntArg(n); ok {
				cfg.ResolvePoll = time.Duration(v) * time.Millisecond
			}
		case "resolve_recheck_ms":
			if v, ok := firstIntArg(n); ok {
				cfg.ResolveRecheck = time.Duration(v) * time.Millisecond
			}
		case "parse_workers":
			if v, ok := firstIntArg(n); ok {
				cfg.ParseWorkers = v
			}
		case "exclude":
			cfg.Exclude = collectStringArgs(n)
		}
	}
	return nil
}

func nodeName(n *document.Node) string {
	if n == nil || n.Name == nil {
		return ""
	}
	return n.Name.NodeNameString()
}

func firstIntArg(n *document.Node) (int, bool) {
	if len(n.Arguments) == 0 {
		return 0, false
	}
	switch v := n.Arguments[0].Value.(type) {
	case int64:
		return int(v), true
	case float64:
		return int(v), true
	default:
		return 0, false
	}
}

func collectStringArgs(n *document.Node) []string {
	if n == nil {
		return nil
	}
	out := make([]string, 0, len(n.Arguments))
	for _, a := range n.Arguments {
		if s, ok := a.Value.(string); ok {
			out = append(out, s)
		}
	}
	if len(out) == 0 && len(n.Children) > 0 {
		out = make([]string, 0, len(n.Children))
		for _, child := range n.Children {
			if child.Name != nil {
				if s, ok := child.Name.Value.(string); ok {
					out = append(out, s)
				}
			}
		}
	}
	return out
}
