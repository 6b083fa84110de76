package testutil

// Author information used for every test commit.
const (
	TestAuthor = "Test User"
	TestEmail  = "test@example.com"
)

// Fingerprint-free sample content for proposal files.
const (
	// TestProposal is minimal proposal front matter and body.
	TestProposal = "---\ntitle: Test Proposal\nstatus: Draft\n---\n\n## Abstract\n\nA test.\n"

	// TestInitialCommit is a message for initial commits.
	TestInitialCommit = "Initial commit"
)
