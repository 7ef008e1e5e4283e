package generator

import (
	"context"
	"fmt"
	"strings"

	"mindscript/internal/domain"
)

// wordsPerMinute approximates a slow guided-reading pace.
const wordsPerMinute = 130

// Stub generates a fixed-shape markdown script without any external calls.
type Stub struct{}

func (Stub) Generate(ctx context.Context, symptoms []string, tone domain.Tone, durationMinutes int) (string, error) {
	symptomList := strings.Join(symptoms, ", ")
	focus := "the challenges you face"
	if len(symptoms) > 0 {
		focus = symptoms[0]
	}
	wordCount := durationMinutes * wordsPerMinute

	var b strings.Builder
	fmt.Fprintf(&b, "# Hypnotherapy Script — %s Approach\n", tone)
	fmt.Fprintf(&b, "*Approx. %d minutes | Generated for: %s*\n\n", durationMinutes, symptomList)
	b.WriteString(`---

## Induction

Close your eyes and take a slow, deep breath in… and out.
With every breath, you feel your body becoming more relaxed, more at ease.
Let go of any tension you may be holding in your shoulders… your jaw… your hands.

You are safe here. There is nothing you need to do except breathe and listen.

---

## Deepening

As I count from 10 to 1, you will drift deeper into a state of calm, focused relaxation.

10… 9… each number takes you deeper…
8… 7… your thoughts slow, like leaves floating on a gentle stream…
6… 5… halfway there — feeling wonderfully heavy and peaceful…
4… 3… almost there now…
2… 1… completely relaxed, completely at ease.

---

`)
	fmt.Fprintf(&b, "## Therapeutic Suggestions (%s)\n\n", symptomList)
	b.WriteString("Your mind is remarkably capable of healing itself.\n")
	fmt.Fprintf(&b, "Every session strengthens your ability to manage %s.\n", focus)
	b.WriteString(`You are calm, in control, and growing stronger each day.

---

## Awakening

In a moment, I will count from 1 to 5 and you will return — fully alert, refreshed, and positive.

1… beginning to return…
2… aware of the room around you…
3… feeling energised…
4… almost there…
5… eyes open, fully awake and feeling wonderful.

---

`)
	fmt.Fprintf(&b, "*Script length: ~%d words | Tone: %s*", wordCount, tone)
	return b.String(), nil
}
