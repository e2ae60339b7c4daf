package token_test

import (
	"testing"

	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"philcali.me/button/internal/dynamodb/token"
)

func TestEncryptionMarshaler(t *testing.T) {
	marshaler := token.NewGCM()
	serialNumber := "G030JF053956LERW"
	lastKey := map[string]types.AttributeValue{
		"PK": &types.AttributeValueMemberS{Value: "G030JF053956LERW:Press"},
		"SK": &types.AttributeValueMemberS{Value: "2026-10-17T09:30:00.000000000Z#abc"},
	}

	t.Run("thing==Unmarshal(Marshal(thing))", func(t *testing.T) {
		encoded, err := marshaler.Marshal(serialNumber, lastKey)
		if err != nil {
			t.Fatalf("Failed to marshal token: %v", err)
		}
		otherKey, err := marshaler.Unmarshal(serialNumber, encoded)
		if err != nil {
			t.Fatalf("Failed to unmarshal token: %s", err)
		}
		for _, field := range []string{"PK", "SK"} {
			value, ok := otherKey[field].(*types.AttributeValueMemberS)
			if !ok {
				t.Fatalf("otherKey %s is not an S type: %v", field, otherKey)
			}
			if value.Value != lastKey[field].(*types.AttributeValueMemberS).Value {
				t.Errorf("otherKey %s is %s", field, value.Value)
			}
		}
	})

	t.Run("len(token)==nil", func(t *testing.T) {
		var emptyMap map[string]types.AttributeValue
		encoded, err := marshaler.Marshal(serialNumber, emptyMap)
		if err != nil {
			t.Fatalf("Threw an error on marshal: %s", err)
		}
		if encoded != nil {
			t.Fatalf("Whoa %s is not nil!", encoded)
		}
		decoded, err := marshaler.Unmarshal(serialNumber, nil)
		if err != nil || decoded != nil {
			t.Fatalf("Expected nil for an empty token, but got %v, %v", decoded, err)
		}
	})

	t.Run("serialA!=serialB", func(t *testing.T) {
		encoded, err := marshaler.Marshal(serialNumber, lastKey)
		if err != nil {
			t.Fatalf("Failed to marshal token: %v", err)
		}
		otherKey, err := marshaler.Unmarshal("G030JF000000OTHER", encoded)
		if err == nil {
			t.Fatalf("Expected an err but received, %v", otherKey)
		}
		if otherKey != nil {
			t.Fatalf("Should not have decrypted %s", otherKey)
		}
	})

	t.Run("Garbage", func(t *testing.T) {
		if _, err := marshaler.Unmarshal(serialNumber, []byte("!!not-a-token")); err == nil {
			t.Fatalf("Expected garbage to fail")
		}
		if _, err := marshaler.Unmarshal(serialNumber, []byte("abc")); err == nil {
			t.Fatalf("Expected a short token to fail")
		}
	})
}
