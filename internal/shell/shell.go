// Package shell implements the interactive menu surface of the social network.
package shell

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"redesocial/internal/entities"
	"redesocial/internal/service"
)

var log = logrus.WithField("layer", "shell")

// errInterrupted aborts the in-progress action and redraws the main menu.
var errInterrupted = errors.New("interrupted")

// errEOF means the input is exhausted.
var errEOF = errors.New("end of input")

// Shell reads numbered menu options and free-form field input line by line
// and dispatches to the service. Domain errors are printed and control
// returns to the menu; nothing here terminates the process.
type Shell struct {
	svc service.Service
	out io.Writer

	lines     chan string
	interrupt chan struct{}

	in io.Reader
}

// New creates new instance of Shell.
func New(svc service.Service, in io.Reader, out io.Writer) *Shell {
	return &Shell{
		svc:       svc,
		out:       out,
		lines:     make(chan string),
		interrupt: make(chan struct{}, 1),
		in:        in,
	}
}

// Interrupt aborts the action being prompted for and returns to the main
// menu. Safe to call from another goroutine (the signal watcher).
func (s *Shell) Interrupt() {
	select {
	case s.interrupt <- struct{}{}:
	default:
	}
}

// Run drives the menu until the exit option, end of input or context
// cancellation.
func (s *Shell) Run(ctx context.Context) error {
	go func() {
		sc := bufio.NewScanner(s.in)
		for sc.Scan() {
			select {
			case s.lines <- sc.Text():
			case <-ctx.Done():
				return
			}
		}
		close(s.lines)
	}()

	for {
		s.printf("\n--- Social Network ---\n")
		s.printf("1. Add profile\n")
		s.printf("2. Find profile\n")
		s.printf("3. List profiles\n")
		s.printf("4. Publish post\n")
		s.printf("5. Send friend request\n")
		s.printf("6. Accept friend request\n")
		s.printf("7. Decline friend request\n")
		s.printf("8. List posts\n")
		s.printf("9. React to a post\n")
		s.printf("10. Advanced profile menu\n")
		s.printf("0. Exit\n")

		opt, err := s.prompt(ctx, "Choose an option: ")
		if err != nil {
			if errors.Is(err, errInterrupted) {
				continue
			}
			return s.finish(err)
		}

		var action func(context.Context) error
		switch opt {
		case "1":
			action = s.addProfile
		case "2":
			action = s.findProfile
		case "3":
			action = s.listProfiles
		case "4":
			action = s.addPost
		case "5":
			action = s.sendFriendRequest
		case "6":
			action = s.acceptFriendRequest
		case "7":
			action = s.declineFriendRequest
		case "8":
			action = s.listPosts
		case "9":
			action = s.addReaction
		case "10":
			action = s.advancedMenu
		case "0":
			return s.finish(nil)
		default:
			s.printf("Invalid option!\n")
			continue
		}

		if err := action(ctx); err != nil {
			if errors.Is(err, errInterrupted) {
				s.printf("\n** Interrupted. Back to the main menu. **\n")
				continue
			}
			if errors.Is(err, errEOF) || errors.Is(err, context.Canceled) {
				return s.finish(err)
			}

			s.printf("Error: %s\n", err)
		}
	}
}

// finish saves once more on the way out so an exit never loses state.
func (s *Shell) finish(cause error) error {
	if err := s.svc.Save(context.Background()); err != nil {
		log.WithError(err).Error("failed to save on exit")
	}

	if cause == nil || errors.Is(cause, errEOF) || errors.Is(cause, context.Canceled) {
		return nil
	}

	return cause
}

func (s *Shell) printf(format string, args ...interface{}) {
	fmt.Fprintf(s.out, format, args...)
}

func (s *Shell) prompt(ctx context.Context, label string) (string, error) {
	s.printf("%s", label)

	select {
	case line, ok := <-s.lines:
		if !ok {
			return "", errEOF
		}
		return strings.TrimSpace(line), nil
	case <-s.interrupt:
		return "", errInterrupted
	case <-ctx.Done():
		return "", ctx.Err()
	}
}

// promptYes asks a S/N question the way the original interface did.
func (s *Shell) promptYes(ctx context.Context, label string) (bool, error) {
	v, err := s.prompt(ctx, label)
	if err != nil {
		return false, err
	}

	return strings.EqualFold(v, "s") || strings.EqualFold(v, "y"), nil
}

// promptProfile resolves one line of input against id, email and nickname,
// in that order.
func (s *Shell) promptProfile(ctx context.Context, label string) (*entities.Profile, error) {
	v, err := s.prompt(ctx, label)
	if err != nil {
		return nil, err
	}

	if p := s.svc.ProfileByID(ctx, v); p != nil {
		return p, nil
	}
	if p := s.svc.ProfileByEmail(ctx, v); p != nil {
		return p, nil
	}
	if p := s.svc.ProfileByNickname(ctx, v); p != nil {
		return p, nil
	}

	s.printf("Profile not found!\n")

	return nil, nil
}

func (s *Shell) addProfile(ctx context.Context) error {
	nickname, err := s.prompt(ctx, "Nickname: ")
	if err != nil {
		return err
	}
	avatar, err := s.prompt(ctx, "Avatar (emoji): ")
	if err != nil {
		return err
	}
	email, err := s.prompt(ctx, "Email: ")
	if err != nil {
		return err
	}
	advanced, err := s.promptYes(ctx, "Advanced profile? (S/N): ")
	if err != nil {
		return err
	}

	p := entities.NewProfile(uuid.NewString(), nickname, avatar, email)
	if advanced {
		p = entities.NewAdvancedProfile(p.ID, nickname, avatar, email)
	}

	if err := s.svc.AddProfile(ctx, p); err != nil {
		return err
	}

	s.printf("Profile added: %s (id %s)\n", p.Nickname, p.ID)

	return nil
}

func (s *Shell) findProfile(ctx context.Context) error {
	opt, err := s.prompt(ctx, "Find by (1 - Email, 2 - Nickname, 3 - ID): ")
	if err != nil {
		return err
	}

	var p *entities.Profile
	switch opt {
	case "1":
		v, err := s.prompt(ctx, "Email: ")
		if err != nil {
			return err
		}
		p = s.svc.ProfileByEmail(ctx, v)
	case "2":
		v, err := s.prompt(ctx, "Nickname: ")
		if err != nil {
			return err
		}
		p = s.svc.ProfileByNickname(ctx, v)
	case "3":
		v, err := s.prompt(ctx, "ID: ")
		if err != nil {
			return err
		}
		p = s.svc.ProfileByID(ctx, v)
	default:
		s.printf("Invalid option!\n")
		return nil
	}

	if p == nil {
		s.printf("Profile not found!\n")
		return nil
	}

	s.printf("Profile found: %s %s\n", p.Avatar, p.Nickname)

	return nil
}

func (s *Shell) listProfiles(ctx context.Context) error {
	for _, p := range s.svc.Profiles(ctx) {
		status := "active"
		if !p.Active {
			status = "inactive"
		}

		s.printf("ID: %s, Nickname: %s, Email: %s, Status: %s\n", p.ID, p.Nickname, p.Email, status)
	}

	return nil
}

func (s *Shell) addPost(ctx context.Context) error {
	author, err := s.promptProfile(ctx, "Author (id, email or nickname): ")
	if err != nil || author == nil {
		return err
	}

	content, err := s.prompt(ctx, "Content: ")
	if err != nil {
		return err
	}
	advanced, err := s.promptYes(ctx, "Advanced post (accepts reactions)? (S/N): ")
	if err != nil {
		return err
	}

	p := entities.NewPost(uuid.NewString(), content, author)
	if advanced {
		p = entities.NewAdvancedPost(p.ID, content, author)
	}

	if err := s.svc.AddPost(ctx, p); err != nil {
		return err
	}

	s.printf("Post published!\n")

	return nil
}

func (s *Shell) listPosts(ctx context.Context) error {
	for i, p := range s.svc.Posts(ctx) {
		s.printf("%d. %s %s: %s (%s)\n", i+1, p.Author.Avatar, p.Author.Nickname, p.Content, p.CreatedAt.Format("2006-01-02 15:04"))
		for _, r := range p.ReactionSummaries() {
			s.printf("   %s\n", r)
		}
	}

	return nil
}

func (s *Shell) sendFriendRequest(ctx context.Context) error {
	sender, err := s.promptProfile(ctx, "Sender (id, email or nickname): ")
	if err != nil || sender == nil {
		return err
	}
	recipient, err := s.promptProfile(ctx, "Recipient (id, email or nickname): ")
	if err != nil || recipient == nil {
		return err
	}

	if err := s.svc.SendFriendRequest(ctx, sender, recipient); err != nil {
		return err
	}

	s.printf("Friend request sent to %s\n", recipient.Nickname)

	return nil
}

func (s *Shell) acceptFriendRequest(ctx context.Context) error {
	sender, err := s.promptProfile(ctx, "Sender (id, email or nickname): ")
	if err != nil || sender == nil {
		return err
	}
	recipient, err := s.promptProfile(ctx, "Recipient (id, email or nickname): ")
	if err != nil || recipient == nil {
		return err
	}

	ok, err := s.promptYes(ctx, fmt.Sprintf("Accept the friend request from %s? (S/N): ", sender.Nickname))
	if err != nil {
		return err
	}
	if !ok {
		s.printf("Friend request not accepted.\n")
		return nil
	}

	if err := s.svc.AcceptFriendRequest(ctx, sender, recipient); err != nil {
		return err
	}

	s.printf("Friend request accepted!\n")

	return nil
}

func (s *Shell) declineFriendRequest(ctx context.Context) error {
	sender, err := s.promptProfile(ctx, "Sender (id, email or nickname): ")
	if err != nil || sender == nil {
		return err
	}
	recipient, err := s.promptProfile(ctx, "Recipient (id, email or nickname): ")
	if err != nil || recipient == nil {
		return err
	}

	if err := s.svc.DeclineFriendRequest(ctx, sender, recipient); err != nil {
		return err
	}

	s.printf("Friend request declined.\n")

	return nil
}

func (s *Shell) addReaction(ctx context.Context) error {
	posts := s.svc.Posts(ctx)
	if len(posts) == 0 {
		s.printf("No posts yet!\n")
		return nil
	}

	if err := s.listPosts(ctx); err != nil {
		return err
	}

	n, err := s.prompt(ctx, "Post number: ")
	if err != nil {
		return err
	}

	var post *entities.Post
	for i := range posts {
		if fmt.Sprintf("%d", i+1) == n {
			post = posts[i]
			break
		}
	}
	if post == nil {
		s.printf("Post not found!\n")
		return nil
	}

	reactor, err := s.promptProfile(ctx, "Reacting profile (id, email or nickname): ")
	if err != nil || reactor == nil {
		return err
	}

	opt, err := s.prompt(ctx, fmt.Sprintf("Reaction (1 - %s, 2 - %s, 3 - %s, 4 - %s): ",
		entities.Like, entities.Dislike, entities.Laugh, entities.Surprise))
	if err != nil {
		return err
	}

	var kind entities.ReactionKind
	switch opt {
	case "1":
		kind = entities.Like
	case "2":
		kind = entities.Dislike
	case "3":
		kind = entities.Laugh
	case "4":
		kind = entities.Surprise
	default:
		s.printf("Invalid option!\n")
		return nil
	}

	if err := s.svc.AddReaction(ctx, post, entities.NewReaction(uuid.NewString(), kind, reactor)); err != nil {
		return err
	}

	s.printf("Reaction added!\n")

	return nil
}

func (s *Shell) advancedMenu(ctx context.Context) error {
	caller, err := s.promptProfile(ctx, "Your profile (id, email or nickname): ")
	if err != nil || caller == nil {
		return err
	}
	target, err := s.promptProfile(ctx, "Target profile (id, email or nickname): ")
	if err != nil || target == nil {
		return err
	}

	activate, err := s.promptYes(ctx, "Activate the target? (S to activate / N to deactivate): ")
	if err != nil {
		return err
	}

	if err := s.svc.SetProfileActive(ctx, caller, target, activate); err != nil {
		return err
	}

	status := "activated"
	if !activate {
		status = "deactivated"
	}

	s.printf("Profile %s %s.\n", target.Nickname, status)

	return nil
}
