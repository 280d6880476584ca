package db

import (
	"context"
	"time"

	"golang.org/x/crypto/bcrypt"

	"smartlib/models"
)

// SeedBooks is the demo catalog. It doubles as the offline fallback when
// the store is unreachable at boot, so the ids are fixed literals rather
// than fresh uuids per process.
func SeedBooks() []models.Book {
	return []models.Book{
		{
			ID: "0d4a3a86-6a4c-4cf4-9d3b-0f2b5a1f9a01", Title: "Laskar Pelangi",
			Author: "Andrea Hirata", Publisher: "Bentang Pustaka", Genre: "Novel",
			Description: "Kisah sepuluh anak Belitung yang memperjuangkan pendidikan.",
			PublishYear: 2005, Stock: 5,
		},
		{
			ID: "0d4a3a86-6a4c-4cf4-9d3b-0f2b5a1f9a02", Title: "Bumi Manusia",
			Author: "Pramoedya Ananta Toer", Publisher: "Hasta Mitra", Genre: "Novel",
			Description: "Roman pertama Tetralogi Buru tentang Minke dan Nyai Ontosoroh.",
			PublishYear: 1980, Stock: 3,
		},
		{
			ID: "0d4a3a86-6a4c-4cf4-9d3b-0f2b5a1f9a03", Title: "Filosofi Teras",
			Author: "Henry Manampiring", Publisher: "Kompas", Genre: "Pengembangan Diri",
			Description: "Pengantar filsafat Stoa untuk hidup yang lebih tenang.",
			PublishYear: 2018, Stock: 4,
		},
		{
			ID: "0d4a3a86-6a4c-4cf4-9d3b-0f2b5a1f9a04", Title: "Clean Code",
			Author: "Robert C. Martin", Publisher: "Prentice Hall", Genre: "Teknologi",
			Description: "A handbook of agile software craftsmanship.",
			PublishYear: 2008, Stock: 2,
		},
		{
			ID: "0d4a3a86-6a4c-4cf4-9d3b-0f2b5a1f9a05", Title: "Pengantar Ilmu Hukum",
			Author: "Satjipto Rahardjo", Publisher: "Citra Aditya Bakti", Genre: "Hukum",
			Description: "Buku ajar dasar untuk mahasiswa fakultas hukum.",
			PublishYear: 2014, Stock: 6,
		},
		{
			ID: "0d4a3a86-6a4c-4cf4-9d3b-0f2b5a1f9a06", Title: "Atomic Habits",
			Author: "James Clear", Publisher: "Gramedia Pustaka Utama", Genre: "Pengembangan Diri",
			Description: "Perubahan kecil yang memberikan hasil luar biasa.",
			PublishYear: 2019, Stock: 7,
		},
		{
			ID: "0d4a3a86-6a4c-4cf4-9d3b-0f2b5a1f9a07", Title: "Sapiens",
			Author: "Yuval Noah Harari", Publisher: "KPG", Genre: "Sejarah",
			Description: "Riwayat singkat umat manusia.",
			PublishYear: 2017, Stock: 3,
		},
		{
			ID: "0d4a3a86-6a4c-4cf4-9d3b-0f2b5a1f9a08", Title: "Statistika untuk Penelitian",
			Author: "Sugiyono", Publisher: "Alfabeta", Genre: "Referensi",
			Description: "Metode statistik terapan untuk skripsi dan tesis.",
			PublishYear: 2013, Stock: 8,
		},
	}
}

// SeedUsers creates the demo accounts on an empty user store: one admin
// and one member, both with known demo passwords.
func SeedUsers(ctx context.Context, users UserStore) error {
	n, err := users.CountUsers(ctx)
	if err != nil || n > 0 {
		return err
	}

	now := time.Now().UTC()
	for _, acct := range []struct {
		id, name, email, password, phone, address, membershipID, role string
	}{
		{
			id:    "7f6f04a2-52c2-4c3e-8a46-2b7e30b2aa01",
			name:  "Administrator", email: "admin@smartlib.id", password: "admin123",
			phone: "021-5550101", address: "Jl. Perpustakaan No. 1, Jakarta",
			membershipID: "ADM-000001", role: models.RoleAdmin,
		},
		{
			id:    "7f6f04a2-52c2-4c3e-8a46-2b7e30b2aa02",
			name:  "Budi Santoso", email: "budi@example.com", password: "member123",
			phone: "0812-3456-7890", address: "Jl. Mawar No. 12, Bekasi",
			membershipID: "MEM-000001", role: models.RoleMember,
		},
	} {
		hash, err := bcrypt.GenerateFromPassword([]byte(acct.password), bcrypt.DefaultCost)
		if err != nil {
			return err
		}
		u := &models.User{
			ID:           acct.id,
			Name:         acct.name,
			Email:        acct.email,
			PasswordHash: string(hash),
			Phone:        acct.phone,
			Address:      acct.address,
			MembershipID: acct.membershipID,
			Role:         acct.role,
			JoinDate:     now,
		}
		if err := users.CreateUser(ctx, u); err != nil {
			return err
		}
	}
	return nil
}
