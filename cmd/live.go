package cmd

import (
	"fmt"
	"strings"

	"github.com/urfave/cli/v2"

	"github.com/redditlive/pkg/live"
	"github.com/redditlive/pkg/models"
)

// LiveCommand returns the live command tree
func LiveCommand() *cli.Command {
	return &cli.Command{
		Name:  "live",
		Usage: "Interact with reddit live threads",
		Subcommands: []*cli.Command{
			{
				Name:      "show",
				Usage:     "Show a live thread's settings",
				ArgsUsage: "<thread-id>",
				Action:    runLiveShow,
			},
			{
				Name:      "updates",
				Usage:     "Stream a live thread's updates, newest first",
				ArgsUsage: "<thread-id>",
				Flags: []cli.Flag{
					&cli.IntFlag{
						Name:  "limit",
						Usage: "Maximum number of updates to print (0 = all)",
						Value: 25,
					},
				},
				Action: runLiveUpdates,
			},
			{
				Name:      "post",
				Usage:     "Add an update to a live thread",
				ArgsUsage: "<thread-id>",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:     "body",
						Usage:    "Markdown body of the update",
						Required: true,
					},
				},
				Action: runLivePost,
			},
			{
				Name:      "close",
				Usage:     "Close a live thread permanently",
				ArgsUsage: "<thread-id>",
				Action:    runLiveClose,
			},
			{
				Name:      "edit",
				Usage:     "Edit a live thread's settings; omitted flags keep their current value",
				ArgsUsage: "<thread-id>",
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "title"},
					&cli.StringFlag{Name: "description"},
					&cli.StringFlag{Name: "resources"},
					&cli.BoolFlag{Name: "nsfw"},
				},
				Action: runLiveEdit,
			},
			{
				Name:      "contributors",
				Usage:     "List a live thread's contributors",
				ArgsUsage: "<thread-id>",
				Action:    runLiveContributors,
			},
			{
				Name:      "invite",
				Usage:     "Invite a redditor to contribute",
				ArgsUsage: "<thread-id> <username>",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:  "permissions",
						Usage: "Comma-separated permission subset (\"none\" for none, omit for all)",
					},
				},
				Action: runLiveInvite,
			},
			{
				Name:      "set-permissions",
				Usage:     "Replace a contributor's permission set",
				ArgsUsage: "<thread-id> <username>",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:  "permissions",
						Usage: "Comma-separated permission subset (\"none\" for none, omit for all)",
					},
				},
				Action: runLiveSetPermissions,
			},
			{
				Name:      "remove",
				Usage:     "Remove a contributor by fullname (e.g. t2_1w72)",
				ArgsUsage: "<thread-id> <fullname>",
				Action:    runLiveRemove,
			},
			{
				Name:      "remove-invite",
				Usage:     "Withdraw a contributor invite by fullname",
				ArgsUsage: "<thread-id> <fullname>",
				Action:    runLiveRemoveInvite,
			},
			{
				Name:      "accept-invite",
				Usage:     "Accept a pending contributor invite",
				ArgsUsage: "<thread-id>",
				Action:    runLiveAcceptInvite,
			},
			{
				Name:      "leave",
				Usage:     "Abdicate your contributor position",
				ArgsUsage: "<thread-id>",
				Action:    runLiveLeave,
			},
			{
				Name:      "strike",
				Usage:     "Strike an update's content",
				ArgsUsage: "<thread-id> <update-id>",
				Action:    runLiveStrike,
			},
			{
				Name:      "remove-update",
				Usage:     "Delete an update from a live thread",
				ArgsUsage: "<thread-id> <update-id>",
				Action:    runLiveRemoveUpdate,
			},
		},
	}
}

func runLiveShow(c *cli.Context) error {
	thread, err := threadArg(c)
	if err != nil {
		return err
	}

	title, err := thread.Title()
	if err != nil {
		return err
	}
	// the first accessor resolved the thread; the rest are free
	description, _ := thread.Description()
	resources, _ := thread.Resources()
	state, _ := thread.State()
	nsfw, _ := thread.NSFW()
	viewers, _ := thread.ViewerCount()
	created, _ := thread.Created()

	fmt.Printf("Thread:      %s\n", thread.ID())
	fmt.Printf("Title:       %s\n", title)
	fmt.Printf("State:       %s\n", state)
	fmt.Printf("NSFW:        %v\n", nsfw)
	fmt.Printf("Viewers:     %d\n", viewers)
	fmt.Printf("Created:     %s\n", created.Format("2006-01-02 15:04:05 MST"))
	if description != "" {
		fmt.Printf("Description:\n%s\n", description)
	}
	if resources != "" {
		fmt.Printf("Resources:\n%s\n", resources)
	}
	return nil
}

func runLiveUpdates(c *cli.Context) error {
	thread, err := threadArg(c)
	if err != nil {
		return err
	}

	stream := thread.Updates(live.ListingOptions{Limit: c.Int("limit")})
	for stream.Next() {
		update := stream.Update()
		author, err := update.Author()
		if err != nil {
			return err
		}
		body, err := update.Body()
		if err != nil {
			return err
		}
		created, _ := update.Created()
		stricken, _ := update.Stricken()

		marker := " "
		if stricken {
			marker = "x"
		}
		fmt.Printf("[%s] %s /u/%s: %s\n",
			marker, created.Format("15:04:05"), author, body)
	}
	return stream.Err()
}

func runLivePost(c *cli.Context) error {
	thread, err := threadArg(c)
	if err != nil {
		return err
	}
	if err := thread.Contrib().Add(c.String("body")); err != nil {
		return err
	}
	fmt.Println("Update posted")
	return nil
}

func runLiveClose(c *cli.Context) error {
	thread, err := threadArg(c)
	if err != nil {
		return err
	}
	if err := thread.Contrib().Close(); err != nil {
		return err
	}
	fmt.Printf("Live thread %s closed\n", thread.ID())
	return nil
}

func runLiveEdit(c *cli.Context) error {
	thread, err := threadArg(c)
	if err != nil {
		return err
	}

	var settings live.ThreadSettings
	if c.IsSet("title") {
		title := c.String("title")
		settings.Title = &title
	}
	if c.IsSet("description") {
		description := c.String("description")
		settings.Description = &description
	}
	if c.IsSet("resources") {
		resources := c.String("resources")
		settings.Resources = &resources
	}
	if c.IsSet("nsfw") {
		nsfw := c.Bool("nsfw")
		settings.NSFW = &nsfw
	}

	if err := thread.Contrib().UpdateSettings(settings); err != nil {
		return err
	}
	fmt.Println("Settings updated")
	return nil
}

func runLiveContributors(c *cli.Context) error {
	thread, err := threadArg(c)
	if err != nil {
		return err
	}

	contributors, err := thread.Contributor().List()
	if err != nil {
		return err
	}
	for _, contributor := range contributors {
		fmt.Printf("%s\t%s\t%s\n", contributor.Name, contributor.ID,
			strings.Join(contributor.Permissions, ","))
	}
	return nil
}

// permissionsFlag translates the CLI flag into the API's three-way
// convention: flag omitted = all, "none" = none, otherwise the subset.
func permissionsFlag(c *cli.Context) []string {
	if !c.IsSet("permissions") {
		return nil
	}
	raw := c.String("permissions")
	if raw == "" || raw == "none" {
		return []string{}
	}
	return strings.Split(raw, ",")
}

func runLiveInvite(c *cli.Context) error {
	thread, err := threadArg(c)
	if err != nil {
		return err
	}
	name := c.Args().Get(1)
	if name == "" {
		return fmt.Errorf("a username is required")
	}

	err = thread.Contributor().Invite(name, permissionsFlag(c))
	if models.IsConflict(err) {
		fmt.Printf("%s is already invited\n", name)
		return nil
	}
	if err != nil {
		return err
	}
	fmt.Printf("Invited %s\n", name)
	return nil
}

func runLiveSetPermissions(c *cli.Context) error {
	thread, err := threadArg(c)
	if err != nil {
		return err
	}
	name := c.Args().Get(1)
	if name == "" {
		return fmt.Errorf("a username is required")
	}

	if err := thread.Contributor().UpdateContributor(name, permissionsFlag(c)); err != nil {
		return err
	}
	fmt.Printf("Updated permissions for %s\n", name)
	return nil
}

func runLiveRemove(c *cli.Context) error {
	thread, err := threadArg(c)
	if err != nil {
		return err
	}
	fullname := c.Args().Get(1)
	if fullname == "" {
		return fmt.Errorf("a redditor fullname is required")
	}

	if err := thread.Contributor().Remove(models.Fullname(fullname)); err != nil {
		return err
	}
	fmt.Printf("Removed %s\n", fullname)
	return nil
}

func runLiveRemoveInvite(c *cli.Context) error {
	thread, err := threadArg(c)
	if err != nil {
		return err
	}
	fullname := c.Args().Get(1)
	if fullname == "" {
		return fmt.Errorf("a redditor fullname is required")
	}

	if err := thread.Contributor().RemoveInvite(models.Fullname(fullname)); err != nil {
		return err
	}
	fmt.Printf("Removed invite for %s\n", fullname)
	return nil
}

func runLiveAcceptInvite(c *cli.Context) error {
	thread, err := threadArg(c)
	if err != nil {
		return err
	}
	if err := thread.Contributor().AcceptInvite(); err != nil {
		return err
	}
	fmt.Printf("Accepted invite to %s\n", thread.ID())
	return nil
}

func runLiveLeave(c *cli.Context) error {
	thread, err := threadArg(c)
	if err != nil {
		return err
	}
	if err := thread.Contributor().Leave(); err != nil {
		return err
	}
	fmt.Printf("Left %s\n", thread.ID())
	return nil
}

func updateArg(c *cli.Context) (*live.Update, error) {
	thread, err := threadArg(c)
	if err != nil {
		return nil, err
	}
	updateID := c.Args().Get(1)
	if updateID == "" {
		return nil, fmt.Errorf("an update id is required")
	}
	return thread.Update(updateID), nil
}

func runLiveStrike(c *cli.Context) error {
	update, err := updateArg(c)
	if err != nil {
		return err
	}
	if err := update.Contrib().Strike(); err != nil {
		return err
	}
	fmt.Printf("Struck update %s\n", update.ID())
	return nil
}

func runLiveRemoveUpdate(c *cli.Context) error {
	update, err := updateArg(c)
	if err != nil {
		return err
	}
	if err := update.Contrib().Remove(); err != nil {
		return err
	}
	fmt.Printf("Removed update %s\n", update.ID())
	return nil
}
