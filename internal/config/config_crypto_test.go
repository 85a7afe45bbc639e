package config_test

import (
	"errors"
	"testing"

	"github.com/saulo-duarte/quizdeck/internal/config"
)

const testKey = "01234567890123456789012345678901"

func TestInitCrypto(t *testing.T) {
	t.Run("ShortKey", func(t *testing.T) {
		err := config.InitCrypto("chave_curta")
		if !errors.Is(err, config.ErrInvalidCryptoKey) {
			t.Errorf("InitCrypto should reject a short key, got %v", err)
		}
	})

	t.Run("EmptyKeyDisables", func(t *testing.T) {
		if err := config.InitCrypto(""); err != nil {
			t.Fatalf("InitCrypto(\"\") returned error: %v", err)
		}
		if config.CryptoEnabled() {
			t.Error("encryption should be disabled with an empty key")
		}
		if _, err := config.Encrypt("x"); err == nil {
			t.Error("Encrypt should fail while encryption is disabled")
		}
	})

	t.Run("ValidKey", func(t *testing.T) {
		if err := config.InitCrypto(testKey); err != nil {
			t.Fatalf("InitCrypto failed with a valid key: %v", err)
		}
		if !config.CryptoEnabled() {
			t.Error("encryption should be enabled")
		}
	})
}

func TestEncryptDecrypt(t *testing.T) {
	if err := config.InitCrypto(testKey); err != nil {
		t.Fatalf("InitCrypto: %v", err)
	}
	defer config.InitCrypto("")

	t.Run("SimpleText", func(t *testing.T) {
		plaintext := `{"sessions":[],"currentSessionId":null}`

		ciphertext, err := config.Encrypt(plaintext)
		if err != nil {
			t.Fatalf("Encrypt failed: %v", err)
		}

		decrypted, err := config.Decrypt(ciphertext)
		if err != nil {
			t.Fatalf("Decrypt failed: %v", err)
		}

		if decrypted != plaintext {
			t.Errorf("decrypted text (%q) does not match original (%q)", decrypted, plaintext)
		}

		ciphertext2, _ := config.Encrypt(plaintext)
		if ciphertext == ciphertext2 {
			t.Errorf("encryption is not randomised; ciphertexts should differ")
		}
	})

	t.Run("EmptyText", func(t *testing.T) {
		ciphertext, err := config.Encrypt("")
		if err != nil {
			t.Fatalf("Encrypt failed: %v", err)
		}
		decrypted, err := config.Decrypt(ciphertext)
		if err != nil {
			t.Fatalf("Decrypt failed: %v", err)
		}
		if decrypted != "" {
			t.Errorf("decrypted empty text is wrong: %q", decrypted)
		}
	})

	t.Run("Tampered", func(t *testing.T) {
		if _, err := config.Decrypt("bm90LXJlYWxseS1jaXBoZXJ0ZXh0"); err == nil {
			t.Error("Decrypt should fail on garbage input")
		}
	})
}
