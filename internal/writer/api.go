package writer

import (
	"context"
	"errors"

	"github.com/loganintech/go-reddit/v2/reddit"

	"github.com/olgasafonova/reddit-content-mcp-server/internal/base"
	"github.com/olgasafonova/reddit-content-mcp-server/internal/content"
)

// Submission identifies something the session just created.
type Submission struct {
	ID  string // fullname when the API reports one
	URL string // absolute
}

// API is the write side of the Reddit API. Every method acts as the
// session user.
type API interface {
	// Me returns the username the credentials belong to.
	Me(ctx context.Context) (string, error)

	SubmitText(ctx context.Context, subreddit, title, text string) (Submission, error)
	SubmitLink(ctx context.Context, subreddit, title, url string) (Submission, error)

	// Comment replies to a post or comment fullname.
	Comment(ctx context.Context, parentFullname, text string) (Submission, error)

	// Vote casts dir on the post or comment with the given fullname.
	Vote(ctx context.Context, target Target, fullname string, dir Direction) error
}

type redditAPI struct {
	client *base.Client
}

// NewRedditAPI writes through a go-reddit backed client.
func NewRedditAPI(client *base.Client) API {
	return &redditAPI{client: client}
}

func (a *redditAPI) Me(ctx context.Context) (string, error) {
	var user *reddit.User
	err := a.client.Call(ctx, "me", "", func(ctx context.Context) (*reddit.Response, error) {
		var (
			resp *reddit.Response
			err  error
		)
		user, resp, err = a.client.Reddit.Account.Info(ctx)
		return resp, err
	})
	if err != nil {
		return "", err
	}
	if user == nil {
		return "", errors.New("identity endpoint returned no user")
	}
	return user.Name, nil
}

func (a *redditAPI) SubmitText(ctx context.Context, subreddit, title, text string) (Submission, error) {
	return a.submit(ctx, "submit_text", subreddit, func(ctx context.Context) (*reddit.Submitted, *reddit.Response, error) {
		return a.client.Reddit.Post.SubmitText(ctx, reddit.SubmitTextRequest{
			Subreddit: subreddit,
			Title:     title,
			Text:      text,
		})
	})
}

func (a *redditAPI) SubmitLink(ctx context.Context, subreddit, title, url string) (Submission, error) {
	return a.submit(ctx, "submit_link", subreddit, func(ctx context.Context) (*reddit.Submitted, *reddit.Response, error) {
		return a.client.Reddit.Post.SubmitLink(ctx, reddit.SubmitLinkRequest{
			Subreddit: subreddit,
			Title:     title,
			URL:       url,
		})
	})
}

func (a *redditAPI) submit(ctx context.Context, action, subreddit string, fn func(context.Context) (*reddit.Submitted, *reddit.Response, error)) (Submission, error) {
	var submitted *reddit.Submitted
	err := a.client.Call(ctx, action, subreddit, func(ctx context.Context) (*reddit.Response, error) {
		var (
			resp *reddit.Response
			err  error
		)
		submitted, resp, err = fn(ctx)
		return resp, err
	})
	if err != nil {
		return Submission{}, err
	}
	if submitted == nil {
		return Submission{}, errors.New("submit returned no post")
	}
	return Submission{ID: submitted.FullID, URL: content.PermalinkURL(submitted.URL)}, nil
}

func (a *redditAPI) Comment(ctx context.Context, parentFullname, text string) (Submission, error) {
	var created *reddit.Comment
	err := a.client.Call(ctx, "comment", parentFullname, func(ctx context.Context) (*reddit.Response, error) {
		var (
			resp *reddit.Response
			err  error
		)
		created, resp, err = a.client.Reddit.Comment.Submit(ctx, parentFullname, text)
		return resp, err
	})
	if err != nil {
		return Submission{}, err
	}
	if created == nil {
		return Submission{}, errors.New("comment endpoint returned no comment")
	}
	return Submission{ID: created.FullID, URL: content.PermalinkURL(created.Permalink)}, nil
}

func (a *redditAPI) Vote(ctx context.Context, target Target, fullname string, dir Direction) error {
	return a.client.Call(ctx, "vote_"+string(dir), fullname, func(ctx context.Context) (*reddit.Response, error) {
		if target == TargetComment {
			switch dir {
			case DirectionUp:
				return a.client.Reddit.Comment.Upvote(ctx, fullname)
			case DirectionDown:
				return a.client.Reddit.Comment.Downvote(ctx, fullname)
			default:
				return a.client.Reddit.Comment.RemoveVote(ctx, fullname)
			}
		}
		switch dir {
		case DirectionUp:
			return a.client.Reddit.Post.Upvote(ctx, fullname)
		case DirectionDown:
			return a.client.Reddit.Post.Downvote(ctx, fullname)
		default:
			return a.client.Reddit.Post.RemoveVote(ctx, fullname)
		}
	})
}
