/*
Package peg is a small parsing expression grammar engine.

Grammars are written as text and compiled once into an immutable Grammar,
which may then be used concurrently to parse any number of inputs.

Grammar Text

A grammar is a sequence of rules. A rule has a name and an expression:

   amount   = range / constant
   range    = constant _ "-" _ constant
   @integer = DIGIT+
   _        = SPACE*

A rule ends where the next rule definition starts, so rules may span several
lines. Comments start with '#' and run up to the end of the line.
The first rule of the grammar is its start rule.

Expressions are built from

   "text"     literal, using Go string escapes
   "text"i    literal, matched case-insensitively
   [a-z0-9]   character class; [^...] negates it
   .          any code-point
   name       reference to another rule or to a builtin
   ( e )      grouping
   e*  e+  e? repetition
   &e  !e     positive and negative look-ahead, consuming no input
   e1 e2      sequence
   e1 / e2    ordered choice

Builtins are EOI (end of input), WORD (letters, marks, decimal digits and
connector punctuation), DIGIT, LETTER and SPACE. EOI is the only builtin
which appears in the parse tree.

Parse Trees

Every rule produces a Node carrying the rule's name and the byte span of the
matched input. Rules whose name starts with an underscore are silent: they
produce no node of their own, the nodes of their sub-rules are handed to the
enclosing rule. Rules marked with '@' are atomic: they produce a node, but
nodes of sub-rules are dropped.

Ordered choice commits to the first alternative that matches; there is no
longest-match semantic. Clients relying on keyword alternations have to list
longer alternatives first.

Parsing is anchored: a parse succeeds only if the start rule consumes the
complete input. Rule results are memoized per input position (packrat
parsing), so look-ahead heavy grammars stay linear in practice. Engine work
per call is bounded by MaxSteps.

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.
*/
package peg
