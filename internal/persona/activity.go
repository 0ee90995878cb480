package persona

import (
	"sort"
	"strings"
	"time"

	"github.com/mvoloshin/personify/internal/model"
)

// Cue word lists for activity-derived findings. A finding fires on the
// number of DISTINCT cues present across the user's combined text, and
// every keyword-cued finding cites items that actually contain a cue.
var (
	helpSeekingCues = []string{"help", "advice", "question", "how to", "what should"}
	helpingCues     = []string{"help", "suggest", "recommend", "try", "solution"}
	negativeCues    = []string{"frustrated", "annoying", "hate", "terrible", "worst", "problem", "issue"}
	technicalCues   = []string{"bug", "error", "broken"}
	socialCues      = []string{"people", "social", "interaction", "misunderstand"}
	learningCues    = []string{"learn", "understand", "study", "course", "tutorial", "guide"}
	careerCues      = []string{"job", "career", "work", "professional", "salary", "interview"}
)

// archetype classifies the account by its age at collection time
func archetype(createdUTC int64, collectedAt time.Time) string {
	if createdUTC <= 0 || collectedAt.IsZero() {
		return "Reddit user"
	}

	age := collectedAt.Sub(time.Unix(createdUTC, 0).UTC())
	switch {
	case age > 3*365*24*time.Hour:
		return "Long-term Reddit user"
	case age > 365*24*time.Hour:
		return "Regular Reddit user"
	default:
		return "Newer Reddit user"
	}
}

// topSubreddits ranks communities by combined post and comment volume
func topSubreddits(profile *model.Profile, max int) []model.SubredditActivity {
	counts := make(map[string]*model.SubredditActivity)
	for _, item := range profile.Posts {
		if item.Subreddit == "" {
			continue
		}
		sa := counts[item.Subreddit]
		if sa == nil {
			sa = &model.SubredditActivity{Name: item.Subreddit}
			counts[item.Subreddit] = sa
		}
		sa.Posts++
	}
	for _, item := range profile.Comments {
		if item.Subreddit == "" {
			continue
		}
		sa := counts[item.Subreddit]
		if sa == nil {
			sa = &model.SubredditActivity{Name: item.Subreddit}
			counts[item.Subreddit] = sa
		}
		sa.Comments++
	}

	ranked := make([]model.SubredditActivity, 0, len(counts))
	for _, sa := range counts {
		ranked = append(ranked, *sa)
	}
	sort.Slice(ranked, func(i, j int) bool {
		if ranked[i].Total() != ranked[j].Total() {
			return ranked[i].Total() > ranked[j].Total()
		}
		return ranked[i].Name < ranked[j].Name
	})

	if len(ranked) > max {
		ranked = ranked[:max]
	}
	return ranked
}

func behaviorFindings(profile *model.Profile, scanned []scannedItem) []model.Finding {
	var findings []model.Finding

	posts := len(profile.Posts)
	comments := len(profile.Comments)

	if comments > 0 && comments > 2*posts {
		findings = append(findings, model.Finding{
			Text:     "Prefers commenting over posting, more reactive than proactive",
			Evidence: citeKind(scanned, model.ItemKindComment, 3),
		})
	}

	if distinctSubreddits(scanned) > 5 {
		findings = append(findings, model.Finding{
			Text:     "Engages across diverse communities and topics",
			Evidence: citeFirst(scanned, 2),
		})
	}

	return findings
}

func motivationFindings(profile *model.Profile, scanned []scannedItem, lowered string) []model.Finding {
	var findings []model.Finding

	if distinctCues(lowered, helpSeekingCues) > 0 {
		findings = append(findings, model.Finding{
			Text:     "Seeks community support and advice for problem-solving",
			Evidence: citeMatching(scanned, helpSeekingCues, 2),
		})
	}

	if len(profile.Comments) > 10 {
		findings = append(findings, model.Finding{
			Text:     "Motivated to share knowledge and help others",
			Evidence: citeKind(scanned, model.ItemKindComment, 3),
		})
	}

	if distinctCommentSubreddits(scanned) > 3 {
		findings = append(findings, model.Finding{
			Text:     "Enjoys participating in diverse online communities",
			Evidence: citeKind(scanned, model.ItemKindComment, 2),
		})
	}

	return findings
}

func personalityFindings(profile *model.Profile, scanned []scannedItem, lowered string) []model.Finding {
	var findings []model.Finding

	if avgWordsPerPost(lowered, len(profile.Posts)) > 100 {
		findings = append(findings, model.Finding{
			Text:     "Detailed Communicator: tends to provide comprehensive explanations and detailed responses",
			Evidence: citeKind(scanned, model.ItemKindPost, 2),
		})
	}

	if len(profile.Comments) > 20 {
		findings = append(findings, model.Finding{
			Text:     "Highly Engaged: actively participates in discussions and community interactions",
			Evidence: citeKind(scanned, model.ItemKindComment, 3),
		})
	}

	if distinctCues(lowered, helpingCues) >= 3 {
		findings = append(findings, model.Finding{
			Text:     "Helpful: often provides assistance and recommendations to others",
			Evidence: citeMatching(scanned, helpingCues, 2),
		})
	}

	return findings
}

func frustrationFindings(scanned []scannedItem, lowered string) []model.Finding {
	var findings []model.Finding

	if distinctCues(lowered, negativeCues) > 3 {
		findings = append(findings, model.Finding{
			Text:     "Expresses dissatisfaction with various systems or experiences",
			Evidence: citeMatching(scanned, negativeCues, 2),
		})
	}

	if distinctCues(lowered, technicalCues) > 0 {
		findings = append(findings, model.Finding{
			Text:     "Encounters technical issues and system problems",
			Evidence: citeMatching(scanned, technicalCues, 2),
		})
	}

	if distinctCues(lowered, socialCues) > 0 {
		findings = append(findings, model.Finding{
			Text:     "Experiences challenges in social or professional interactions",
			Evidence: citeMatching(scanned, socialCues, 2),
		})
	}

	return findings
}

func goalFindings(profile *model.Profile, scanned []scannedItem, lowered string) []model.Finding {
	var findings []model.Finding

	if distinctCues(lowered, learningCues) > 3 {
		findings = append(findings, model.Finding{
			Text:     "Continuously learns and improves knowledge in areas of interest",
			Evidence: citeMatching(scanned, learningCues, 2),
		})
	}

	if distinctCues(lowered, careerCues) > 3 {
		findings = append(findings, model.Finding{
			Text:     "Advance career and professional development",
			Evidence: citeMatching(scanned, careerCues, 2),
		})
	}

	if len(profile.Comments) > 15 {
		findings = append(findings, model.Finding{
			Text:     "Build connections and contribute to online communities",
			Evidence: citeKind(scanned, model.ItemKindComment, 3),
		})
	}

	return findings
}

// distinctCues counts how many of the cue words appear at least once
func distinctCues(lowered string, cues []string) int {
	n := 0
	for _, cue := range cues {
		if strings.Contains(lowered, cue) {
			n++
		}
	}
	return n
}

func distinctSubreddits(scanned []scannedItem) int {
	seen := make(map[string]struct{})
	for _, si := range scanned {
		if si.item.Subreddit != "" {
			seen[si.item.Subreddit] = struct{}{}
		}
	}
	return len(seen)
}

func distinctCommentSubreddits(scanned []scannedItem) int {
	seen := make(map[string]struct{})
	for _, si := range scanned {
		if si.item.Kind == model.ItemKindComment && si.item.Subreddit != "" {
			seen[si.item.Subreddit] = struct{}{}
		}
	}
	return len(seen)
}

func avgWordsPerPost(lowered string, posts int) int {
	if posts == 0 {
		return 0
	}
	return len(strings.Fields(lowered)) / posts
}

// citeMatching cites items whose text contains any of the cues, in
// collection order
func citeMatching(scanned []scannedItem, cues []string, max int) []model.Evidence {
	var evidence []model.Evidence
	for _, si := range scanned {
		if len(evidence) >= max {
			break
		}
		for _, cue := range cues {
			if strings.Contains(si.text, cue) {
				evidence = append(evidence, evidenceFor(si.item, ""))
				break
			}
		}
	}
	return evidence
}

// citeKind cites the first items of one kind, for count-based findings
func citeKind(scanned []scannedItem, kind model.ItemKind, max int) []model.Evidence {
	var evidence []model.Evidence
	for _, si := range scanned {
		if len(evidence) >= max {
			break
		}
		if si.item.Kind == kind {
			evidence = append(evidence, evidenceFor(si.item, ""))
		}
	}
	return evidence
}

func citeFirst(scanned []scannedItem, max int) []model.Evidence {
	var evidence []model.Evidence
	for _, si := range scanned {
		if len(evidence) >= max {
			break
		}
		evidence = append(evidence, evidenceFor(si.item, ""))
	}
	return evidence
}
