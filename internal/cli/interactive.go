package cli

import (
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
)

// mainMenu asks how to search when comicdl is started without a query or
// tag. It returns nil when the user quits.
func mainMenu(p *prompter, opts sessionOptions) (*sessionOptions, error) {
	kind, err := p.Ask("Search by (q)uery, (t)ag, or (d)etailed search?", "q")
	if err != nil {
		return quitOnEOF(err)
	}

	switch strings.ToLower(kind) {
	case "t":
		if opts.Query.Tag, err = p.AskRequired("Enter tag"); err != nil {
			return quitOnEOF(err)
		}
		return &opts, nil
	case "d":
		return detailedMenu(p, opts)
	default:
		if opts.Query.Term, err = p.AskRequired("Enter search query"); err != nil {
			return quitOnEOF(err)
		}
		return &opts, nil
	}
}

// detailedMenu lets the user adjust every search option before starting.
func detailedMenu(p *prompter, opts sessionOptions) (*sessionOptions, error) {
	kind, err := p.Ask("Search by (q)uery or (t)ag?", "q")
	if err != nil {
		return quitOnEOF(err)
	}
	if strings.ToLower(kind) == "t" {
		opts.Query.Tag, err = p.AskRequired("Enter tag")
	} else {
		opts.Query.Term, err = p.AskRequired("Enter search query")
	}
	if err != nil {
		return quitOnEOF(err)
	}

	for {
		printOptions(p.out, opts)
		choice, err := p.Ask("Choose an option to change, or press (s) to start search, (q) to quit", "s")
		if err != nil {
			return quitOnEOF(err)
		}

		switch strings.ToLower(choice) {
		case "q":
			return nil, nil
		case "s":
			q := opts.Query
			if err := q.Validate(); err != nil {
				fmt.Fprintf(p.out, "Cannot start: %v\n", err)
				continue
			}
			return &opts, nil
		case "1":
			if opts.Query.Term, err = p.Ask("Enter search query", opts.Query.Term); err == nil {
				opts.Query.Tag = ""
			}
		case "2":
			if opts.Query.Tag, err = p.Ask("Enter tag", opts.Query.Tag); err == nil {
				opts.Query.Term = ""
			}
		case "3":
			err = editDate(p, &opts)
		case "4":
			opts.OutputDir, err = p.Ask("Enter download path", opts.OutputDir)
		case "5":
			opts.Query.MinIssue, err = askIssue(p, "Enter min issue number (none to clear)", opts.Query.MinIssue)
		case "6":
			opts.Query.MaxIssue, err = askIssue(p, "Enter max issue number (none to clear)", opts.Query.MaxIssue)
		case "7":
			err = editResults(p, &opts)
		case "8":
			opts.Verbose = !opts.Verbose
			fmt.Fprintf(p.out, "Verbose output set to %t\n", opts.Verbose)
		default:
			fmt.Fprintf(p.out, "Unknown option %q\n", choice)
		}
		if err != nil {
			return quitOnEOF(err)
		}
	}
}

func printOptions(w io.Writer, opts sessionOptions) {
	q := opts.Query
	date := notSet
	if q.MinDate != nil {
		date = q.MinDate.Format(dateLayout)
	}
	fmt.Fprintln(w, "\nCurrent Options:")
	fmt.Fprintf(w, "  1. Search Query: %s\n", orNotSet(q.Term))
	fmt.Fprintf(w, "  2. Search Tag: %s\n", orNotSet(q.Tag))
	fmt.Fprintf(w, "  3. Date (YYYY-MM-DD): %s\n", date)
	fmt.Fprintf(w, "  4. Download Path: %s\n", opts.OutputDir)
	fmt.Fprintf(w, "  5. Min Issue: %s\n", formatIssueBound(q.MinIssue))
	fmt.Fprintf(w, "  6. Max Issue: %s\n", formatIssueBound(q.MaxIssue))
	fmt.Fprintf(w, "  7. Results: %d\n", q.Results)
	fmt.Fprintf(w, "  8. Verbose: %t\n", opts.Verbose)
}

const notSet = "Not set"

func orNotSet(s string) string {
	if s == "" {
		return notSet
	}
	return s
}

func formatIssueBound(v *float64) string {
	if v == nil {
		return notSet
	}
	return strconv.FormatFloat(*v, 'f', -1, 64)
}

func editDate(p *prompter, opts *sessionOptions) error {
	def := ""
	if opts.Query.MinDate != nil {
		def = opts.Query.MinDate.Format(dateLayout)
	}
	answer, err := p.Ask("Enter date (YYYY-MM-DD)", def)
	if err != nil {
		return err
	}
	d, err := parseDate(answer)
	if err != nil {
		fmt.Fprintln(p.out, "Warning: Date format should be YYYY-MM-DD. Date filter disabled.")
		opts.Query.MinDate = nil
		return nil
	}
	opts.Query.MinDate = &d
	return nil
}

// askIssue returns nil when the answer is "none", clearing the bound, and
// keeps the current value when the answer isn't a number.
func askIssue(p *prompter, label string, current *float64) (*float64, error) {
	def := ""
	if current != nil {
		def = formatIssueBound(current)
	}
	answer, err := p.Ask(label, def)
	if err != nil {
		return current, err
	}
	if answer == "" || strings.EqualFold(answer, "none") {
		return nil, nil
	}
	v, err := strconv.ParseFloat(answer, 64)
	if err != nil {
		fmt.Fprintf(p.out, "%q is not a number\n", answer)
		return current, nil
	}
	return &v, nil
}

func editResults(p *prompter, opts *sessionOptions) error {
	answer, err := p.Ask("Enter number of results", strconv.Itoa(opts.Query.Results))
	if err != nil {
		return err
	}
	n, err := strconv.Atoi(answer)
	if err != nil || n < 1 {
		fmt.Fprintf(p.out, "%q is not a positive number\n", answer)
		return nil
	}
	opts.Query.Results = n
	return nil
}

func quitOnEOF(err error) (*sessionOptions, error) {
	if errors.Is(err, io.EOF) {
		return nil, nil
	}
	return nil, err
}
