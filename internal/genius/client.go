package genius

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/avast/retry-go"
	"golang.org/x/time/rate"
)

const defaultBaseURL = "https://api.genius.com"

// SongData is the metadata pulled from Genius for one song. All fields may
// be empty; a song Genius doesn't know yields the zero value.
type SongData struct {
	Producer1   string `json:"producer_1"`
	Producer2   string `json:"producer_2"`
	Writer1     string `json:"writer_1"`
	Writer2     string `json:"writer_2"`
	ReleaseDate string `json:"release_date"`
	SampleType  string `json:"sample_type"`
	SampleFrom  string `json:"sample_from"`
	Genre       string `json:"genre"`
}

// statusError lets retry logic inspect HTTP status codes.
type statusError struct {
	code int
	url  string
}

func (e *statusError) Error() string {
	return fmt.Sprintf("genius: status %d from %s", e.code, e.url)
}

// Client talks to the Genius REST API, with a lookup cache in front and
// retries on server errors.
type Client struct {
	BaseURL string
	token   string
	client  *http.Client
	limiter *rate.Limiter
	cache   *Cache
}

func NewClient(token string, cache *Cache) *Client {
	return &Client{
		BaseURL: defaultBaseURL,
		token:   token,
		client:  &http.Client{Timeout: 20 * time.Second},
		limiter: rate.NewLimiter(rate.Every(200*time.Millisecond), 1),
		cache:   cache,
	}
}

// SongDetails looks up producers, writers, release date, sample info, and
// genre for one song. Results (including "not found") are cached; transport
// and server failures return an error, as does a failed cache flush.
func (c *Client) SongDetails(ctx context.Context, title, artist string) (SongData, error) {
	if cached, ok := c.cache.Get(title, artist); ok {
		return cached, nil
	}

	id, err := c.search(ctx, title, artist)
	if err != nil {
		return SongData{}, err
	}
	if id == 0 {
		// Unknown song: cache the miss so it isn't retried every week.
		data := SongData{}
		if err := c.cache.Set(title, artist, data); err != nil {
			return data, fmt.Errorf("caching %q - %q: %w", title, artist, err)
		}
		return data, nil
	}

	data, err := c.song(ctx, id)
	if err != nil {
		return SongData{}, err
	}
	if err := c.cache.Set(title, artist, data); err != nil {
		return data, fmt.Errorf("caching %q - %q: %w", title, artist, err)
	}
	return data, nil
}

func (c *Client) search(ctx context.Context, title, artist string) (int, error) {
	var payload struct {
		Response struct {
			Hits []struct {
				Result struct {
					ID int `json:"id"`
				} `json:"result"`
			} `json:"hits"`
		} `json:"response"`
	}

	q := url.Values{"q": {title + " " + artist}}
	if err := c.get(ctx, "/search?"+q.Encode(), &payload); err != nil {
		return 0, fmt.Errorf("searching %q - %q: %w", title, artist, err)
	}
	if len(payload.Response.Hits) == 0 {
		return 0, nil
	}
	return payload.Response.Hits[0].Result.ID, nil
}

func (c *Client) song(ctx context.Context, id int) (SongData, error) {
	var payload struct {
		Response struct {
			Song struct {
				ReleaseDate     string `json:"release_date"`
				ProducerArtists []struct {
					Name string `json:"name"`
				} `json:"producer_artists"`
				WriterArtists []struct {
					Name string `json:"name"`
				} `json:"writer_artists"`
				Tags []struct {
					Name string `json:"name"`
				} `json:"tags"`
				SongRelationships []struct {
					RelationshipType string `json:"relationship_type"`
					Songs            []struct {
						Title         string `json:"title"`
						PrimaryArtist struct {
							Name string `json:"name"`
						} `json:"primary_artist"`
					} `json:"songs"`
				} `json:"song_relationships"`
			} `json:"song"`
		} `json:"response"`
	}

	if err := c.get(ctx, fmt.Sprintf("/songs/%d", id), &payload); err != nil {
		return SongData{}, fmt.Errorf("fetching song %d: %w", id, err)
	}

	song := payload.Response.Song
	data := SongData{ReleaseDate: song.ReleaseDate}

	if len(song.ProducerArtists) > 0 {
		data.Producer1 = song.ProducerArtists[0].Name
	}
	if len(song.ProducerArtists) > 1 {
		data.Producer2 = song.ProducerArtists[1].Name
	}
	if len(song.WriterArtists) > 0 {
		data.Writer1 = song.WriterArtists[0].Name
	}
	if len(song.WriterArtists) > 1 {
		data.Writer2 = song.WriterArtists[1].Name
	}
	if len(song.Tags) > 0 {
		data.Genre = song.Tags[0].Name
	}

	for _, rel := range song.SongRelationships {
		relType := strings.ToLower(rel.RelationshipType)
		isSample := strings.Contains(relType, "sample")
		isInterpolation := strings.Contains(relType, "interpolat")
		if len(rel.Songs) == 0 || (!isSample && !isInterpolation) {
			continue
		}

		src := rel.Songs[0]
		if isSample {
			data.SampleType = "sample"
		} else {
			data.SampleType = "interpolation"
		}
		data.SampleFrom = src.Title
		if src.PrimaryArtist.Name != "" {
			data.SampleFrom = src.Title + " - " + src.PrimaryArtist.Name
		}
		break
	}

	return data, nil
}

// get performs one authenticated request, retrying on 5xx the way the
// weekly updater needs: a transient Genius outage shouldn't abandon the
// whole catch-up run.
func (c *Client) get(ctx context.Context, path string, out interface{}) error {
	return retry.Do(
		func() error {
			if err := c.limiter.Wait(ctx); err != nil {
				return err
			}

			req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.BaseURL+path, nil)
			if err != nil {
				return err
			}
			req.Header.Set("Authorization", "Bearer "+c.token)

			resp, err := c.client.Do(req)
			if err != nil {
				return err
			}
			defer resp.Body.Close()

			if resp.StatusCode != http.StatusOK {
				return &statusError{code: resp.StatusCode, url: path}
			}
			return json.NewDecoder(resp.Body).Decode(out)
		},
		retry.Attempts(3),
		retry.RetryIf(func(err error) bool {
			if serr, ok := err.(*statusError); ok {
				return serr.code/100 == 5
			}
			return false
		}),
	)
}
