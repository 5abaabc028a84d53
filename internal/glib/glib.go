// Package glib implements the GLib/GObject-aware pretty-printers: thin
// wrappers that sequence several MI print/set commands against a session
// and format the results into a single human-readable block. None of them
// know anything gdbsession or bridge don't already expose — they are
// convenience sequences, not a new layer of debugger functionality.
package glib

import (
	"context"
	"fmt"
	"strings"

	"github.com/zachpodbielniak/gdb-mcp/internal/bridge"
	"github.com/zachpodbielniak/gdb-mcp/internal/gdbsession"
)

// maxGLibElements bounds traversal of linked structures (GList, type
// hierarchies) so a corrupt or cyclic structure in the debuggee can't
// wedge the tool in an infinite loop. SignalInfo uses its own, smaller
// scan limit.
const maxGLibElements = 1000

// Func is the shape every GLib pretty-printer has: run against a session's
// expression, return formatted text or an error.
type Func func(ctx context.Context, sess *gdbsession.Session, expression string) (string, error)

// isNullish reports whether output looks like a NULL pointer print result.
func isNullish(output string) bool {
	return output == "" || strings.Contains(output, "0x0") || strings.Contains(output, "(nil)")
}

// PrintGObject reports a GObject instance's dynamic type, reference count,
// and raw field dump.
func PrintGObject(ctx context.Context, sess *gdbsession.Session, expression string) (string, error) {
	var b strings.Builder
	fmt.Fprintf(&b, "GObject Analysis: %s\n\n", expression)

	if typeOut, err := bridge.Execute(ctx, sess, fmt.Sprintf("print g_type_name(G_OBJECT_TYPE(%s))", expression)); err == nil && typeOut != "" {
		fmt.Fprintf(&b, "Type: %s\n", typeOut)
	}
	if refOut, err := bridge.Execute(ctx, sess, fmt.Sprintf("print ((GObject*)%s)->ref_count", expression)); err == nil && refOut != "" {
		fmt.Fprintf(&b, "Reference Count: %s\n", refOut)
	}
	if dataOut, err := bridge.Execute(ctx, sess, fmt.Sprintf("print *(%s)", expression)); err == nil && dataOut != "" {
		fmt.Fprintf(&b, "\nObject Data:\n%s", dataOut)
	}

	return b.String(), nil
}

// PrintGList walks a GList/GSList element by element, printing each node's
// data pointer, up to maxGLibElements entries.
func PrintGList(ctx context.Context, sess *gdbsession.Session, expression string) (string, error) {
	var b strings.Builder
	fmt.Fprintf(&b, "GList Contents: %s\n\n", expression)

	if _, err := bridge.Execute(ctx, sess, fmt.Sprintf("print (GList*)%s", expression)); err != nil {
		return "", fmt.Errorf("Failed to read list: %w", err)
	}
	if _, err := bridge.Execute(ctx, sess, "set $glist_iter = $"); err != nil {
		return "", fmt.Errorf("Failed to read list: %w", err)
	}

	count := 0
	for count < maxGLibElements {
		checkOutput, err := bridge.Execute(ctx, sess, "print $glist_iter")
		if err != nil || isNullish(checkOutput) {
			break
		}

		dataOutput, err := bridge.Execute(ctx, sess, "print $glist_iter->data")
		if err == nil && dataOutput != "" {
			fmt.Fprintf(&b, "[%d]: %s\n", count, dataOutput)
		}

		if _, err := bridge.Execute(ctx, sess, "set $glist_iter = $glist_iter->next"); err != nil {
			break
		}
		count++
	}

	switch {
	case count == 0:
		b.WriteString("(empty list or NULL)\n")
	case count >= maxGLibElements:
		fmt.Fprintf(&b, "\n... (showing first %d items)\n", maxGLibElements)
	}
	fmt.Fprintf(&b, "\nTotal items shown: %d\n", count)

	return b.String(), nil
}

// PrintGHash reports a GHashTable's allocated size, live entry count, and
// raw structure. It does not iterate entries: walking a GHashTable's
// internal bucket array from GDB requires calling back into
// g_hash_table_foreach, which the result text points the caller at via
// gdb_command instead of attempting here.
func PrintGHash(ctx context.Context, sess *gdbsession.Session, expression string) (string, error) {
	var b strings.Builder
	fmt.Fprintf(&b, "GHashTable Analysis: %s\n\n", expression)

	if sizeOut, err := bridge.Execute(ctx, sess, fmt.Sprintf("print ((GHashTable*)%s)->size", expression)); err == nil && sizeOut != "" {
		fmt.Fprintf(&b, "Size: %s\n", sizeOut)
	}
	if nnodesOut, err := bridge.Execute(ctx, sess, fmt.Sprintf("print ((GHashTable*)%s)->nnodes", expression)); err == nil && nnodesOut != "" {
		fmt.Fprintf(&b, "Number of entries: %s\n", nnodesOut)
	}
	if structOut, err := bridge.Execute(ctx, sess, fmt.Sprintf("print *(GHashTable*)%s", expression)); err == nil && structOut != "" {
		fmt.Fprintf(&b, "\nStructure:\n%s\n", structOut)
	}

	b.WriteString("\nNote: To iterate entries, use gdb_command with:\n")
	b.WriteString("  'call g_hash_table_foreach(table, print_func, NULL)'\n")

	return b.String(), nil
}

// TypeHierarchy walks a GObject instance's GType up through g_type_parent
// until it reaches a fundamental type (G_TYPE_INVALID, reported by GDB as
// 0), printing one indented line per level.
func TypeHierarchy(ctx context.Context, sess *gdbsession.Session, expression string) (string, error) {
	var b strings.Builder
	fmt.Fprintf(&b, "Type Hierarchy for: %s\n\n", expression)

	if _, err := bridge.Execute(ctx, sess, fmt.Sprintf("set $gtype = G_OBJECT_TYPE(%s)", expression)); err != nil {
		return "", fmt.Errorf("Failed to resolve type: %w", err)
	}

	for depth := 0; depth < maxGLibElements; depth++ {
		nameOutput, err := bridge.Execute(ctx, sess, "print g_type_name($gtype)")
		if err != nil || isNullish(nameOutput) {
			break
		}

		b.WriteString(strings.Repeat("  ", depth))
		if depth > 0 {
			b.WriteString("└─ ")
		}
		fmt.Fprintf(&b, "%s\n", nameOutput)

		if _, err := bridge.Execute(ctx, sess, "set $gtype = g_type_parent($gtype)"); err != nil {
			break
		}

		checkOutput, err := bridge.Execute(ctx, sess, "print $gtype")
		if err == nil && strings.Contains(checkOutput, " = 0") {
			break
		}
	}

	return b.String(), nil
}

// SignalInfo lists the signal names registered on a GObject instance's
// type, via g_signal_list_ids and g_signal_name.
func SignalInfo(ctx context.Context, sess *gdbsession.Session, expression string) (string, error) {
	var b strings.Builder
	fmt.Fprintf(&b, "Signal Information for: %s\n\n", expression)

	if _, err := bridge.Execute(ctx, sess, fmt.Sprintf("set $gtype = G_OBJECT_TYPE(%s)", expression)); err != nil {
		return "", fmt.Errorf("Failed to resolve type: %w", err)
	}

	if nameOutput, err := bridge.Execute(ctx, sess, "print g_type_name($gtype)"); err == nil && nameOutput != "" {
		fmt.Fprintf(&b, "Type: %s\n\n", nameOutput)
	}

	if _, err := bridge.Execute(ctx, sess, "set $n_ids = 0"); err != nil {
		return "", fmt.Errorf("Failed to list signals: %w", err)
	}
	if _, err := bridge.Execute(ctx, sess, "set $signal_ids = (guint*)g_signal_list_ids($gtype, &$n_ids)"); err != nil {
		return "", fmt.Errorf("Failed to list signals: %w", err)
	}

	if countOutput, err := bridge.Execute(ctx, sess, "print $n_ids"); err == nil && countOutput != "" {
		fmt.Fprintf(&b, "Number of signals: %s\n", countOutput)
	}
	b.WriteString("\nSignals:\n")

	const signalScanLimit = 50
	for i := 0; i < signalScanLimit; i++ {
		checkOutput, err := bridge.Execute(ctx, sess, fmt.Sprintf("print $n_ids > %d", i))
		if err != nil || strings.Contains(checkOutput, " = 0") {
			break
		}

		sigOutput, err := bridge.Execute(ctx, sess, fmt.Sprintf("print g_signal_name($signal_ids[%d])", i))
		if err == nil && sigOutput != "" {
			fmt.Fprintf(&b, "  - %s\n", sigOutput)
		}
	}

	return b.String(), nil
}
