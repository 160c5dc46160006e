/*
Package lenient reads the object and array shaped values that users
type after a command tag, where strict JSON would be too fussy:

	--config {size: 10, mode: fast}
	--sizes [1, 2, 3]
	--names ['Ann Lee', bob]

The text is tokenized and read with a small recursive descent parser
that quotes bare keys and bare words, producing strict JSON. That
JSON is then decoded with fastjson. Because quoting happens at the
token level, a colon or a brace inside a quoted string is never
mistaken for structure.
*/
package lenient
