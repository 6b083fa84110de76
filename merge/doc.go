// Package merge folds the content of other proposal families into a local
// working copy.
//
// The work happens in a scratch repository (the build repository) and moves
// through three states:
//
//	Fresh ──CloneSource──▶ SourceOnly ──FetchUpstream──▶ SourceWithUpstream
//
// Fresh has checked that the source working copy is clean and identified its
// family. SourceOnly holds a copy of the source HEAD on master. In
// SourceWithUpstream both the local head and the family's canonical upstream
// head are known: ChangedFiles lists files changed locally since the two
// diverged, and Merge folds the content root of every other family into the
// local head with one merge commit each.
//
// Merging never resolves conflicts. If both sides hold a file at the same
// path with different mode or content, the merge fails with a
// *ConflictError and nothing is committed.
package merge
