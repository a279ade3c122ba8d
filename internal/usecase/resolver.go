package usecase

import (
	"strings"

	"github.com/obsbot/logbot/internal/domain/entity"
	"github.com/obsbot/logbot/pkg/logger"
)

const maxLogCandidates = 3

const logFileSuffix = ".txt"

// Recognized paste hosts. obsproject.com links already point at raw
// content; the paste sites need their trailing id rewritten into a
// raw-content URL.
var logHosts = []string{
	"https://obsproject.com/logs/",
	"https://hastebin.com/",
	"https://pastebin.com/",
}

// Resolver turns an incoming message into an ordered list of log
// candidates, at most maxLogCandidates long.
type Resolver struct {
	limiter     *RateLimiter
	blacklist   map[int64]struct{}
	isSupporter func(userID int64) bool
}

// NewResolver builds a resolver. isSupporter may be nil when the chat
// platform has no supporter notion; supporters bypass the link
// cooldown.
func NewResolver(limiter *RateLimiter, channelBlacklist []int64, isSupporter func(int64) bool) *Resolver {
	blacklist := make(map[int64]struct{}, len(channelBlacklist))
	for _, id := range channelBlacklist {
		blacklist[id] = struct{}{}
	}
	return &Resolver{limiter: limiter, blacklist: blacklist, isSupporter: isSupporter}
}

// ResolveCandidates extracts log candidates from attachments and
// message text. Suppressed channels resolve to nothing.
func (r *Resolver) ResolveCandidates(msg entity.IncomingMessage) []entity.LogCandidate {
	if _, ok := r.blacklist[msg.ChannelID]; ok {
		return nil
	}

	var candidates []entity.LogCandidate

	for _, att := range msg.Attachments {
		if !strings.HasSuffix(att.URL, logFileSuffix) {
			continue
		}
		// collisions on filename are possible here, but unlikely
		if r.limiter.IsLimited(att.Filename) {
			logger.DebugLogger.Printf("%s attempted to upload a rate-limited log", msg.AuthorName)
			continue
		}
		candidates = append(candidates, entity.LogCandidate{FetchURL: att.URL, DisplayURL: att.URL})
	}

	for _, part := range strings.Fields(msg.Text) {
		cand, ok := rewriteHostLink(part)
		if !ok {
			continue
		}
		if r.supporter(msg.AuthorID) || !r.limiter.IsLimited(cand.FetchURL) {
			candidates = append(candidates, cand)
		} else {
			logger.DebugLogger.Printf("%s attempted to post a rate-limited log", msg.AuthorName)
		}
	}

	if len(candidates) > maxLogCandidates {
		logger.WarnLogger.Printf("Too many possible log URLs, cutting down to %d...", maxLogCandidates)
		candidates = candidates[:maxLogCandidates]
	}
	return candidates
}

func (r *Resolver) supporter(userID int64) bool {
	return r.isSupporter != nil && r.isSupporter(userID)
}

// rewriteHostLink normalizes a single whitespace-delimited token into
// a candidate if it starts with a recognized host prefix.
func rewriteHostLink(part string) (entity.LogCandidate, bool) {
	recognized := false
	for _, lh := range logHosts {
		if strings.HasPrefix(part, lh) {
			recognized = true
			break
		}
	}
	if !recognized {
		return entity.LogCandidate{}, false
	}

	switch {
	case strings.Contains(part, "obsproject.com"):
		return entity.LogCandidate{FetchURL: part, DisplayURL: part}, true
	case strings.Contains(part, "hastebin.com"):
		id := trailingSegment(part)
		if id == "" {
			return entity.LogCandidate{}, false
		}
		return entity.LogCandidate{
			FetchURL:   "https://hastebin.com/raw/" + id,
			DisplayURL: part,
		}, true
	case strings.Contains(part, "pastebin.com"):
		id := trailingSegment(part)
		if id == "" {
			return entity.LogCandidate{}, false
		}
		return entity.LogCandidate{
			FetchURL:   "https://pastebin.com/raw/" + id,
			DisplayURL: part,
		}, true
	}
	return entity.LogCandidate{}, false
}

func trailingSegment(link string) string {
	return link[strings.LastIndex(link, "/")+1:]
}
