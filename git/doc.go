// Package git wraps go-git with the repository operations the preprocessor
// needs to turn a proposal working copy into a merged build checkout.
//
// It uses go-billy for all filesystem access, exposes go-git types directly
// where they are already the natural vocabulary (plumbing.Hash, object.Tree,
// object.Commit) and keeps an escape hatch through Underlying().
//
// # Architecture
//
// The package is built on a few principles:
//
//  1. Thin wrappers over go-git, never a reimplementation of git
//  2. Billy filesystems for all local I/O
//  3. Escape hatches via Underlying() and Filesystem()
//  4. Organized by operation type (repository, remote, status, diff, commit,
//     branch, checkout)
//  5. Every returned error carries an errors.ErrorCode
//
// # Core Types
//
// Repository wraps a go-git repository together with the billy filesystem
// holding its working tree. It is not safe for concurrent writers; the build
// directory lock in the CLI serializes runs.
//
// CommitOptions describes a commit written straight to the object store by
// WriteCommit. Tree, parents, message and signature are given explicitly
// because merge commits are composed from trees that never touch the index.
//
// # Factory Functions
//
// Init creates a repository with a .git directory at a path. Open loads an
// existing one and fails with NOT_FOUND when the path holds no .git
// directory. OpenOrInit combines both and is what the build and cache
// directories use:
//
//	repo, err := git.OpenOrInit(filepath.Join(root, "build", "repo"))
//	if err != nil {
//	    return err
//	}
//
// All factory functions accept RepositoryOption arguments. WithFilesystem
// replaces the OS filesystem, which is how tests keep repositories in memory:
//
//	repo, err := git.Init("/repo", git.WithFilesystem(memfs.New()))
//
// # Fetching
//
// FetchCommit fetches a single ref through an anonymous remote that is never
// written to the repository configuration. No credentials are sent and tags
// are not fetched. The refspec is "src" or "src:dst":
//
//	// Tip of the remote's default branch, recorded in FETCH_HEAD only.
//	tip, err := repo.FetchCommit(ctx, "/home/me/EIPs", "HEAD", nil)
//
//	// Another family's master, kept as a scratch branch.
//	theirs, err := repo.FetchCommit(ctx,
//	    "https://github.com/ethereum/ERCs.git", "master:master-other", rep)
//
// A src of "HEAD" follows the remote's symbolic HEAD to the branch it names.
// The fetched tip is first stored under refs/eips-build/fetch, then copied
// to FETCH_HEAD and dst, and the scratch ref is removed. Transfer progress
// from the sideband is parsed into a progress.Reporter.
//
// Local paths are fetched with the file transport, which runs the git
// binary's upload-pack. Fetch tests therefore use on-disk repositories under
// t.TempDir().
//
// # Working Copy State
//
// CheckDirty rejects a working copy with staged, modified or untracked files.
// The build directory lives inside the working copy, so callers name it and
// everything under that top-level directory is skipped:
//
//	if err := source.CheckDirty("build"); err != nil {
//	    // errors.GetCode(err) == errors.CodeDirty; the offending paths are
//	    // in the "paths" context field.
//	    return err
//	}
//
// ForceCheckout resets the index and working tree to HEAD. With clean set it
// also removes every file HEAD does not track, ignored files included, so a
// reused build checkout never keeps leftovers from a previous run.
// CheckoutDetached detaches HEAD at a commit and checks it out the same way.
//
// # History
//
// MergeBase finds the best common ancestor of two commits and fails with
// NOT_FOUND for unrelated histories. ChangedFiles lists the paths changed on
// the second side since that ancestor, sorted and without duplicates:
//
//	files, err := repo.ChangedFiles(ctx, upstream.Hash, local.Hash)
//	// files == []string{"content/00003.md"}
//
// ResolveCommit accepts any revision go-git understands: a full or
// abbreviated hash, a branch, a ref name or HEAD. CommitObject and Head load
// commits by hash or from HEAD.
//
// # Writing Commits and Refs
//
// WriteCommit encodes a commit directly into the object store without
// touching refs, the index or the working tree:
//
//	hash, err := repo.WriteCommit(git.CommitOptions{
//	    Tree:    merged.Hash,
//	    Parents: []plumbing.Hash{ours, theirs},
//	    Message: "Merge https://github.com/ethereum/ERCs.git",
//	    Signature: object.Signature{
//	        Name:  "eips-build",
//	        Email: "eips-build@eips-build.invalid",
//	    },
//	})
//
// UpdateHead moves whatever HEAD points at. SetBranch, DeleteBranch and
// HasBranch manage refs/heads; DetachHead and SetHeadBranch rewrite HEAD
// itself. HasSubmodules reports whether a commit declares submodules, which
// the build does not support.
//
// # Escape Hatches
//
//	gogitRepo := repo.Underlying()   // go-git repository
//	fs := repo.Filesystem()          // billy filesystem of the working tree
//	storer := gogitRepo.Storer       // object and reference storage
//
// The merge package uses the storer to write trees built outside the index.
//
// # Error Handling
//
// Known go-git sentinel errors are classified before they are returned, and
// the original error stays in the chain for errors.Is:
//
//   - NOT_FOUND: missing repository, reference, object or path
//   - ALREADY_EXISTS: repository or branch already present
//   - CONFLICT: unclean worktree or non fast-forward update
//   - INVALID_INPUT: bad refspecs, unparsable revisions, bare repositories
//   - FETCH_FAILED: any failure while fetching, with "url" and "refspec"
//     in the error context
//   - DIRTY: returned by CheckDirty
//   - FILESYSTEM_ERROR: permission and path errors from the filesystem
//
// # Context and Cancellation
//
// FetchCommit and ChangedFiles accept a context.Context. Every other
// operation is local and returns promptly.
//
// # Testing
//
// The testutil sub-package builds fixture repositories:
//
//	import "github.com/eips-wg/preprocessor/git/testutil"
//
//	// In memory, for anything that does not fetch.
//	repo, fs, err := testutil.NewMemoryRepo()
//
//	// On disk, when the repository is a fetch source.
//	repo, dir := testutil.NewDiskRepo(t)
//
//	hash, err := testutil.CommitFiles(repo, map[string]string{
//	    "content/00001.md": testutil.TestProposal,
//	}, testutil.TestInitialCommit)
//
// # References
//
//   - go-git documentation: https://pkg.go.dev/github.com/go-git/go-git/v5
//   - go-billy documentation: https://pkg.go.dev/github.com/go-git/go-billy/v5
package git
