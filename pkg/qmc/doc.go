/*
Package qmc removes and reapplies the byte masking used by a media player for its audio files (qmc0, qmc3, qmcogg, qmcflac).

Note that this is NOT encryption.
The mask table is fixed and public, so anyone can reverse the process.

# How it works:

Every byte of a file is XOR'd with a mask byte taken from a fixed 128 byte table.
The table index is derived from the absolute position of the byte in the file, not from the position within whatever chunk is being processed.
This means that output only depends on content and starting offset, and the same operation both decodes and encodes.

The original tool wrapped positions at 0x7FFF before indexing, which shifts the mask for every byte at or beyond position 32767.
Use UseLegacyWrap (or LegacyMask directly) when working with files that were produced by that tool.

# Formats:

The extension of a file selects the paired format, see Lookup.
  - qmc0, qmc3 -> mp3
  - qmcogg -> ogg
  - qmcflac -> flac
  - flac -> qmcflac
  - mp3 -> qmc0

Note that qmc3 and qmc0 both decode to mp3, but mp3 only encodes to qmc0.
*/
package qmc
