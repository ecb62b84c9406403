package cli

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/dmitrijs2005/asklee/internal/api"
)

const timeLayout = "2006-01-02 15:04"

func tagList(tags []string) string {
	if len(tags) == 0 {
		return ""
	}
	return " [" + strings.Join(tags, ", ") + "]"
}

func edited(t *time.Time) string {
	if t == nil {
		return ""
	}
	return ", edited " + t.Local().Format(timeLayout)
}

func printSummaries(w io.Writer, list []*api.QuestionSummary) {
	if len(list) == 0 {
		fmt.Fprintln(w, "Nothing found")
		return
	}
	for _, q := range list {
		fmt.Fprintf(w, "#%-5d %s%s\n", q.ID, q.Title, tagList(q.Tags))
		fmt.Fprintf(w, "       by %s, %d votes, %d answers, %d views\n", q.OwnerName, q.Votes, q.Answers, q.Views)
	}
}

func printQuestions(w io.Writer, list []*api.Question) {
	if len(list) == 0 {
		fmt.Fprintln(w, "  (none)")
		return
	}
	for _, q := range list {
		fmt.Fprintf(w, "  #%-5d %s%s\n", q.ID, q.Title, tagList(q.Tags))
	}
}

func printQuestionDetail(w io.Writer, d *api.QuestionDetail) {
	fmt.Fprintf(w, "#%d %s%s\n", d.ID, d.Title, tagList(d.Tags))
	fmt.Fprintf(w, "asked by %s on %s%s; %d views; +%d / -%d",
		d.OwnerName, d.CreatedAt.Local().Format(timeLayout), edited(d.UpdatedAt), d.Views, d.Upvotes, d.Downvotes)
	if d.MyVote != "" && d.MyVote != "none" {
		fmt.Fprintf(w, " (you %s)", d.MyVote)
	}
	fmt.Fprintln(w)
	if d.Details != nil {
		fmt.Fprintf(w, "\n%s\n", *d.Details)
	}

	fmt.Fprintf(w, "\n%d answer(s)\n", len(d.Answers))
	for _, ans := range d.Answers {
		fmt.Fprintf(w, "--- answer #%d by %s on %s%s; +%d / -%d",
			ans.ID, ans.OwnerName, ans.CreatedAt.Local().Format(timeLayout), edited(ans.UpdatedAt), ans.Upvotes, ans.Downvotes)
		if ans.MyVote != "" && ans.MyVote != "none" {
			fmt.Fprintf(w, " (you %s)", ans.MyVote)
		}
		fmt.Fprintf(w, "\n%s\n", ans.Content)
	}
}

func printUserPage(w io.Writer, p *api.GetUserPageResponse) {
	fmt.Fprintf(w, "%s", p.User.Username)
	if p.User.Email != "" {
		fmt.Fprintf(w, " <%s>", p.User.Email)
	}
	fmt.Fprintf(w, ", member since %s\n", p.User.CreatedAt.Local().Format("2006-01-02"))

	fmt.Fprintln(w, "Asked:")
	printQuestions(w, p.Asked)
	fmt.Fprintln(w, "Answered:")
	printQuestions(w, p.Answered)
}
