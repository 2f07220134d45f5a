// Package manifest reads and writes JSON component manifests.
//
// A manifest declares component kinds without Go struct types, so tools
// can plan, print, register and generate code for them:
//
//	{
//	  "width": 4,
//	  "components": [
//	    {"name": "Position", "fields": [
//	      {"name": "x", "type": "u32"},
//	      {"name": "y", "type": "u32"}
//	    ]},
//	    {"name": "Snake", "fields": [
//	      {"name": "segments", "type": "list<entity>"}
//	    ]}
//	  ]
//	}
package manifest
