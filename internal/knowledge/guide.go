// Package knowledge holds the fixed campus guidance embedded in every prompt.
package knowledge

const guide = `PANDUAN AKADEMIK KAMPUS:
1. CARA ISI KRS:
   - Login ke website 'student.amikompurwokerto.ac.id'.
   - Pilih menu 'Akademik' -> 'Pengajuan'.
   - Pilih mata kuliah yang ingin diambil.
   - Klik 'Simpan' dan tunggu teraktivitasi.
2. CARA VALIDASI KEHADIRAN:
   - Login ke website 'student.amikompurwokerto.ac.id'.
   - Pilih menu 'Proses Pembelajaran' -> 'Kehadiran'.
   - Pilih Tahun ajaran, Semester, dan Mata kuliah.
   - Klik logo atau ikon B dan validasi.`

// Guide returns the campus procedure guide (KRS enrolment and attendance
// validation). The text is constant; no store is touched.
func Guide() string {
	return guide
}
