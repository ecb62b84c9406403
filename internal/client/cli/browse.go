package cli

import (
	"context"
	"errors"
	"fmt"
)

func (a *App) Tags(ctx context.Context) error {
	tags, err := a.api.Tags(ctx)
	if err != nil {
		return err
	}
	if len(tags) == 0 {
		fmt.Fprintln(a.out, "No tags yet")
		return nil
	}
	for _, t := range tags {
		fmt.Fprintf(a.out, "  #%s\n", t.Name)
	}
	return nil
}

func (a *App) Tag(ctx context.Context, args []string) error {
	if len(args) != 1 {
		return errors.New("usage: tag <name>")
	}
	list, err := a.api.QuestionsByTag(ctx, args[0])
	if err != nil {
		return err
	}
	printSummaries(a.out, list)
	return nil
}

// Search runs a substring search; "#name" or "%name" lists a tag instead.
func (a *App) Search(ctx context.Context, query string) error {
	if query == "" {
		return errors.New("usage: search <text> | search #tag")
	}
	list, err := a.api.Search(ctx, query)
	if err != nil {
		return err
	}
	printSummaries(a.out, list)
	return nil
}
