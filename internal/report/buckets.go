// Package report groups drift results and habit streaks into the views shown
// by the people list, the review queue and the dashboard.
package report

import (
	"sort"

	"github.com/Veraticus/tend/internal/drift"
)

// Bucket titles, in display order.
const (
	BucketImportantNeglected = "Important & Neglected"
	BucketOverdue            = "Overdue"
	BucketDueSoon            = "Due Soon"
	BucketAllGood            = "All Good"
)

// Bucket is one titled group of people.
type Bucket struct {
	Title  string
	People []drift.PersonDrift
}

// BucketPeople splits views into the four buckets, always returned in display
// order (possibly empty). A neglected high-priority person appears only in the
// first bucket. Each bucket is sorted by DaysSince descending; ties keep input order.
func BucketPeople(views []drift.PersonDrift) []Bucket {
	buckets := []Bucket{
		{Title: BucketImportantNeglected},
		{Title: BucketOverdue},
		{Title: BucketDueSoon},
		{Title: BucketAllGood},
	}

	for _, v := range views {
		var i int
		switch {
		case v.IsImportantAndNeglected:
			i = 0
		case v.Result.Status == drift.StatusOverdue:
			i = 1
		case v.Result.Status == drift.StatusDueSoon:
			i = 2
		default:
			i = 3
		}
		buckets[i].People = append(buckets[i].People, v)
	}

	for i := range buckets {
		people := buckets[i].People
		sort.SliceStable(people, func(a, b int) bool {
			return people[a].Result.DaysSince > people[b].Result.DaysSince
		})
	}

	return buckets
}

// NonEmpty drops buckets with no people.
func NonEmpty(buckets []Bucket) []Bucket {
	out := make([]Bucket, 0, len(buckets))
	for _, b := range buckets {
		if len(b.People) > 0 {
			out = append(out, b)
		}
	}
	return out
}

// NeedsAttention returns everyone in the neglected and overdue buckets, in
// bucket order. It is the queue walked by the interactive review.
func NeedsAttention(views []drift.PersonDrift) []drift.PersonDrift {
	buckets := BucketPeople(views)
	queue := make([]drift.PersonDrift, 0, len(buckets[0].People)+len(buckets[1].People))
	queue = append(queue, buckets[0].People...)
	return append(queue, buckets[1].People...)
}
