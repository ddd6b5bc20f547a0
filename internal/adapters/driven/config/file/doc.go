// Package file provides file-based driven adapters for user-editable
// configuration, currently the prompt template store. Templates live
// as plain text files under the claimlens config directory so claim
// analysts can tune wording without a rebuild.
package file
