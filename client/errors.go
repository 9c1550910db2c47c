// Copyright 2026 The realtps Authors
// This file is part of the realtps library.
//
// The realtps library is free software: you can redistribute it and/or modify
// it under the terms of the GNU Lesser General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// The realtps library is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE. See the
// GNU Lesser General Public License for more details.
//
// You should have received a copy of the GNU Lesser General Public License
// along with the realtps library. If not, see <http://www.gnu.org/licenses/>.

package client

import (
	"github.com/realtps/realtps/chain"
	"github.com/realtps/realtps/internal/errs"
)

func errUnknownChain(id chain.ID) error {
	return errs.Config("unknown chain %q", id)
}

func errUnsupportedFamily(f chain.Family) error {
	return errs.Config("no adapter registered for family %q", f)
}
