package main

import (
	"encoding/json"
	"fmt"
	"os"
	"strconv"
	"text/tabwriter"
	"time"

	"github.com/groblegark/gatewarden/internal/model"
	"github.com/groblegark/gatewarden/internal/ui"
)

// parseKeyArgs parses the <group> <member> positional arguments.
func parseKeyArgs(args []string) (model.Key, error) {
	group, err := strconv.ParseInt(args[0], 10, 64)
	if err != nil {
		return model.Key{}, fmt.Errorf("group must be an integer, got %q", args[0])
	}
	member, err := strconv.ParseInt(args[1], 10, 64)
	if err != nil {
		return model.Key{}, fmt.Errorf("member must be an integer, got %q", args[1])
	}
	return model.Key{GroupID: group, MemberID: member}, nil
}

func printJSON(v any) {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error marshaling JSON: %v\n", err)
		return
	}
	fmt.Println(string(data))
}

func printRecordTable(rec *model.GateRecord) {
	fmt.Printf("ID:        %s\n", rec.ID)
	fmt.Printf("Group:     %d\n", rec.GroupID)
	fmt.Printf("Member:    %d\n", rec.MemberID)
	fmt.Printf("Phase:     %s\n", ui.RenderPhase(rec.Phase))
	fmt.Printf("Question:  %s\n", rec.QuestionID)
	fmt.Printf("Attempts:  %d\n", rec.AttemptsRemaining)
	fmt.Printf("Deadline:  %s (%s)\n", rec.Deadline.Format("2006-01-02 15:04:05"), deadlineLeft(rec.Deadline))
	if !rec.CreatedAt.IsZero() {
		fmt.Printf("Created:   %s\n", rec.CreatedAt.Format("2006-01-02 15:04:05"))
	}
}

func printRecordListTable(recs []*model.GateRecord) {
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "GROUP\tMEMBER\tPHASE\tQUESTION\tATTEMPTS\tDEADLINE")
	for _, rec := range recs {
		fmt.Fprintf(w, "%d\t%d\t%s\t%s\t%d\t%s\n",
			rec.GroupID, rec.MemberID, ui.RenderPhase(rec.Phase),
			rec.QuestionID, rec.AttemptsRemaining, deadlineLeft(rec.Deadline))
	}
	w.Flush()
	fmt.Printf("\n%d open gate(s)\n", len(recs))
}

func printEventListTable(evs []*model.GateEvent) {
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "TIME\tTOPIC\tPAYLOAD")
	for _, ev := range evs {
		fmt.Fprintf(w, "%s\t%s\t%s\n",
			ev.CreatedAt.Format("2006-01-02 15:04:05"), ev.Topic, string(ev.Payload))
	}
	w.Flush()
}

// deadlineLeft renders time remaining until the deadline, or "expired".
func deadlineLeft(deadline time.Time) string {
	left := time.Until(deadline)
	if left <= 0 {
		return ui.RenderRemove("expired")
	}
	return left.Round(time.Second).String()
}
