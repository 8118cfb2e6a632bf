package client

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/MKhiriev/go-note-keeper/internal/adapter"
	"github.com/MKhiriev/go-note-keeper/internal/logger"
	"github.com/MKhiriev/go-note-keeper/models"
	"github.com/atotto/clipboard"
)

const usage = `usage: note-client [flags] <command> [args]

commands:
  register                     create the account given by -login/-password
  list                         list notes, newest first
  add <content> [file]         add a note, optionally with an attachment
  get <id>                     print one note
  update <id> <content>        replace the note text
  delete <id>                  delete a note and its attachment
  download <id> [dest]         save the attachment of a note
  copy <id>                    copy the note text to the clipboard
  storage                      show storage usage
  users                        list users (admin)
  passwd <username> <password> reset a user's password (admin)
  deluser <username>           delete a user and all their notes (admin)
  version                      print the server version
  build-info                   print the client build information
`

type command struct {
	args int
	// public commands run without signing in
	public bool
	run    func(a *App, ctx context.Context, args []string) error
}

var commands = map[string]command{
	"register": {public: true, run: (*App).register},
	"list":     {run: (*App).list},
	"add":      {args: 1, run: (*App).add},
	"get":      {args: 1, run: (*App).get},
	"update":   {args: 2, run: (*App).update},
	"delete":   {args: 1, run: (*App).delete},
	"download": {args: 1, run: (*App).download},
	"copy":     {args: 1, run: (*App).copy},
	"storage":  {run: (*App).storage},
	"users":    {run: (*App).users},
	"passwd":   {args: 2, run: (*App).passwd},
	"deluser":  {args: 1, run: (*App).deleteUser},
	"version":  {public: true, run: (*App).version},
}

type App struct {
	notes       adapter.NotesClient
	credentials models.Credentials
	out         io.Writer

	copyToClipboard func(string) error
	now             func() time.Time

	logger *logger.Logger
}

func NewApp(notes adapter.NotesClient, credentials models.Credentials, out io.Writer, logger *logger.Logger) *App {
	return &App{
		notes:           notes,
		credentials:     credentials,
		out:             out,
		copyToClipboard: clipboard.WriteAll,
		now:             time.Now,
		logger:          logger,
	}
}

func (a *App) Run(ctx context.Context, args []string) error {
	if len(args) == 0 {
		fmt.Fprint(a.out, usage)
		return ErrNoCommand
	}

	name, rest := args[0], args[1:]
	cmd, ok := commands[name]
	if !ok {
		fmt.Fprint(a.out, usage)
		return fmt.Errorf("%w: %s", ErrUnknownCommand, name)
	}
	if len(rest) < cmd.args {
		return fmt.Errorf("%w: %s needs %d argument(s)", ErrMissingArgument, name, cmd.args)
	}

	log := a.logger.With().Str("command", name).Logger()
	log.Debug().Strs("args", rest).Msg("running command")

	if !cmd.public {
		if err := a.signIn(ctx); err != nil {
			return err
		}
	}

	if err := cmd.run(a, ctx, rest); err != nil {
		log.Error().Err(err).Msg("command failed")
		return err
	}
	return nil
}

func (a *App) signIn(ctx context.Context) error {
	if a.credentials.Login == "" || a.credentials.Password == "" {
		return ErrNoCredentials
	}
	if err := a.notes.Login(ctx, a.credentials); err != nil {
		return fmt.Errorf("login: %w", err)
	}
	return nil
}

func (a *App) register(ctx context.Context, _ []string) error {
	if a.credentials.Login == "" || a.credentials.Password == "" {
		return ErrNoCredentials
	}
	if err := a.notes.Register(ctx, a.credentials); err != nil {
		return fmt.Errorf("register: %w", err)
	}
	fmt.Fprintf(a.out, "user %s registered\n", a.credentials.Login)
	return nil
}

func (a *App) list(ctx context.Context, _ []string) error {
	resp, err := a.notes.ListNotes(ctx)
	if err != nil {
		return err
	}

	tw := tabwriter.NewWriter(a.out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tTIMESTAMP\tFILE\tCONTENT")
	for _, n := range resp.Notes {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\n", n.ID, n.Timestamp, n.FileName, preview(n.Content))
	}
	if err = tw.Flush(); err != nil {
		return err
	}

	a.printUsage(resp.Usage)
	return nil
}

func (a *App) add(ctx context.Context, args []string) error {
	content := args[0]
	timestamp := a.now().Format(time.RFC3339)

	var file *models.Upload
	if len(args) > 1 {
		f, err := os.Open(args[1])
		if err != nil {
			return fmt.Errorf("open attachment: %w", err)
		}
		defer f.Close()

		info, err := f.Stat()
		if err != nil {
			return fmt.Errorf("stat attachment: %w", err)
		}
		file = &models.Upload{Name: filepath.Base(args[1]), Size: info.Size(), Reader: f}
	}

	id, err := a.notes.AddNote(ctx, content, timestamp, file)
	if err != nil {
		return err
	}

	fmt.Fprintf(a.out, "note %s added\n", id)
	return nil
}

func (a *App) get(ctx context.Context, args []string) error {
	note, err := a.notes.GetNote(ctx, args[0])
	if err != nil {
		return err
	}

	fmt.Fprintf(a.out, "id:        %s\n", note.ID)
	fmt.Fprintf(a.out, "timestamp: %s\n", note.Timestamp)
	if note.HasFile {
		fmt.Fprintf(a.out, "file:      %s\n", note.FileName)
	}
	fmt.Fprintf(a.out, "\n%s\n", note.Content)
	return nil
}

func (a *App) update(ctx context.Context, args []string) error {
	if err := a.notes.UpdateNote(ctx, args[0], args[1]); err != nil {
		return err
	}
	fmt.Fprintf(a.out, "note %s updated\n", args[0])
	return nil
}

func (a *App) delete(ctx context.Context, args []string) error {
	if err := a.notes.DeleteNote(ctx, args[0]); err != nil {
		return err
	}
	fmt.Fprintf(a.out, "note %s deleted\n", args[0])
	return nil
}

// download writes into a hidden temp file next to the destination and renames
// it once the transfer is complete.
func (a *App) download(ctx context.Context, args []string) error {
	dir := "."
	dest := ""
	if len(args) > 1 {
		dest = args[1]
		dir = filepath.Dir(dest)
	}

	tmp, err := os.CreateTemp(dir, ".download-*")
	if err != nil {
		return fmt.Errorf("create download file: %w", err)
	}
	defer os.Remove(tmp.Name())

	fileName, n, err := a.notes.DownloadFile(ctx, args[0], tmp)
	if closeErr := tmp.Close(); err == nil && closeErr != nil {
		err = closeErr
	}
	if err != nil {
		return err
	}

	if dest == "" {
		dest = safeFileName(fileName, args[0])
	}
	if err = os.Rename(tmp.Name(), dest); err != nil {
		return fmt.Errorf("save download: %w", err)
	}

	fmt.Fprintf(a.out, "saved %s (%d bytes)\n", dest, n)
	return nil
}

func (a *App) copy(ctx context.Context, args []string) error {
	note, err := a.notes.GetNote(ctx, args[0])
	if err != nil {
		return err
	}
	if err = a.copyToClipboard(note.Content); err != nil {
		return fmt.Errorf("copy to clipboard: %w", err)
	}
	fmt.Fprintln(a.out, "copied to clipboard")
	return nil
}

func (a *App) storage(ctx context.Context, _ []string) error {
	usage, err := a.notes.StorageUsage(ctx)
	if err != nil {
		return err
	}
	a.printUsage(usage)
	return nil
}

func (a *App) users(ctx context.Context, _ []string) error {
	resp, err := a.notes.ListUsers(ctx)
	if err != nil {
		return err
	}

	tw := tabwriter.NewWriter(a.out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "USERNAME\tCREATED\tUSED\tREMAINING")
	for _, u := range resp.Users {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\n", u.Username, u.CreatedAt.Format(time.DateTime), u.Usage.UsedStr, u.Usage.RemainingStr)
	}
	return tw.Flush()
}

func (a *App) passwd(ctx context.Context, args []string) error {
	if err := a.notes.SetUserPassword(ctx, args[0], args[1]); err != nil {
		return err
	}
	fmt.Fprintf(a.out, "password of %s reset\n", args[0])
	return nil
}

func (a *App) deleteUser(ctx context.Context, args []string) error {
	if err := a.notes.DeleteUser(ctx, args[0]); err != nil {
		return err
	}
	fmt.Fprintf(a.out, "user %s deleted\n", args[0])
	return nil
}

func (a *App) version(ctx context.Context, _ []string) error {
	v, err := a.notes.ServerVersion(ctx)
	if err != nil {
		return err
	}
	fmt.Fprintf(a.out, "server version: %s\n", v)
	return nil
}

func (a *App) printUsage(usage models.StorageUsage) {
	fmt.Fprintf(a.out, "storage: %s used, %s remaining\n", usage.UsedStr, usage.RemainingStr)
}

// preview is the first line of content, cut to a readable width.
func preview(content string) string {
	const width = 48

	line, _, _ := strings.Cut(content, "\n")
	if r := []rune(line); len(r) > width {
		return string(r[:width-1]) + "…"
	}
	return line
}

func safeFileName(name, fallback string) string {
	name = filepath.Base(filepath.Clean("/" + name))
	if name == "/" || name == "." || name == "" {
		return fallback
	}
	return name
}
