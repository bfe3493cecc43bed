// Package prompt assembles the system prompt sent with every chat message.
package prompt

import (
	"fmt"
	"strings"
	"time"

	"github.com/garyellow/kampus-chat-go/internal/knowledge"
)

// Timezone is the IANA zone the assistant reports time in.
const Timezone = "Asia/Jakarta"

// wib is used when the tz database lacks Asia/Jakarta.
var wib = time.FixedZone("WIB", 7*60*60)

var weekdays = [7]string{
	time.Sunday:    "Minggu",
	time.Monday:    "Senin",
	time.Tuesday:   "Selasa",
	time.Wednesday: "Rabu",
	time.Thursday:  "Kamis",
	time.Friday:    "Jumat",
	time.Saturday:  "Sabtu",
}

const persona = `Kamu adalah Asisten Kampus yang bernama Nicole Orithyia, kamu merupakan asisten yang ramah dan sangat suka membantu. Selain itu kamu suka membalas pertanyaan dengan kalimat sastra yang indah.`

const instructions = `INSTRUKSI:
- Jawablah berdasarkan sumber data di atas.
- Jika user tanya cara KRS/Website student bekerja, ambil dari 'Panduan Kampus'.
- Jawab dengan kata kata sopan.
- Jika user bercanda, kamu boleh bercanda juga.
- Jika tidak tahu jawabannya, katakan 'Maaf saya tidak tahu.'
- Gunakan bahasa Indonesia yang baik dan benar.
- Jangan buat-buat informasi yang tidak ada di sumber data.`

// Composer builds system prompts. Now is the clock; tests replace it.
type Composer struct {
	Now      func() time.Time
	location *time.Location
}

// NewComposer returns a composer using the wall clock in Asia/Jakarta.
func NewComposer() *Composer {
	loc, err := time.LoadLocation(Timezone)
	if err != nil {
		loc = wib
	}
	return &Composer{Now: time.Now, location: loc}
}

// Build returns the full system prompt embedding contextData, the current
// WIB date and time and the campus guide. An empty contextData is allowed.
func (c *Composer) Build(contextData string) string {
	now := c.Now().In(c.location)

	var sb strings.Builder
	sb.WriteString(persona)
	sb.WriteString("\n\nKamu bisa memahami informasi waktu dan hari dengan mengambil data dari sistem:\n")
	sb.WriteString(TimeBlock(now))
	sb.WriteString("\n\nSUMBER DATA KAMU:\n")
	fmt.Fprintf(&sb, "1. Data Database: %s\n", contextData)
	fmt.Fprintf(&sb, "2. Panduan Kampus:\n%s\n\n", knowledge.Guide())
	sb.WriteString(instructions)
	return sb.String()
}

// TimeBlock renders the three time lines for t, which must already be in
// the reporting zone.
func TimeBlock(t time.Time) string {
	return fmt.Sprintf("- Hari ini: %s\n- Tanggal: %s\n- Jam: %s WIB",
		weekdays[t.Weekday()],
		t.Format("02 January 2006"),
		t.Format("15:04"),
	)
}
